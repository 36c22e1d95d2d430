package database

import (
	"fmt"
	"log"
	"time"

	"github.com/tuyensinh/admission-advisor/model"
	"gorm.io/gorm"
)

// Seeder loads a small demonstration admission catalog
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedUniversities(); err != nil {
		return fmt.Errorf("failed to seed universities: %w", err)
	}

	if err := s.SeedMajors(); err != nil {
		return fmt.Errorf("failed to seed majors: %w", err)
	}

	if err := s.SeedAdmissionScores(); err != nil {
		return fmt.Errorf("failed to seed admission scores: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedUniversities creates sample universities with their programs, methods, news and scholarships
func (s *Seeder) SeedUniversities() error {
	var count int64
	if err := s.db.Model(&model.University{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Universities already exist, skipping...")
		return nil
	}

	year := 2024
	universities := []model.University{
		{
			Name:             "Trường Đại học FPT",
			ShortName:        "FPT",
			Introduction:     "Trường đại học tư thục đào tạo theo định hướng doanh nghiệp, mạnh về công nghệ thông tin.",
			OfficialWebsite:  "https://fpt.edu.vn",
			AdmissionWebsite: "https://daihoc.fpt.edu.vn",
			Type:             model.UniversityTypePrivate,
			Locations:        "Hà Nội, TP. HCM, Đà Nẵng, Cần Thơ, Quy Nhơn",
			AcademicPrograms: []model.AcademicProgram{
				{Name: "Chương trình chuẩn", Description: "Học phí theo học kỳ", Tuition: floatPtr(28700000), TuitionUnit: "VNĐ/học kỳ", Year: &year},
			},
			AdmissionMethods: []model.AdmissionMethod{
				{
					Name:        "Xét học bạ THPT",
					Description: "Xét tuyển dựa trên kết quả học tập THPT, thuộc top 50 học sinh toàn quốc.",
					Criteria:    "Top 50 SchoolRank",
					Year:        &year,
					AdmissionCriterias: []model.AdmissionCriteria{
						{Name: "Điểm học bạ", Description: "Tổng điểm 3 môn tổ hợp xét tuyển", MinimumScore: floatPtr(21)},
					},
				},
			},
			AdmissionNews: []model.AdmissionNew{
				{Title: "Đại học FPT công bố phương thức tuyển sinh 2024", Content: "Năm 2024, Trường Đại học FPT tuyển sinh theo phương thức xét học bạ và xét điểm thi tốt nghiệp THPT.", PublishDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Year: &year},
			},
			Scholarships: []model.Scholarship{
				{Name: "Học bổng Nguyễn Văn Đạo", Description: "Học bổng toàn phần cho thí sinh xuất sắc", Value: floatPtr(100), ValueType: "% học phí", Criteria: "Giải quốc gia hoặc điểm thi từ 27", Year: &year},
			},
		},
		{
			Name:             "Đại học Bách khoa Hà Nội",
			ShortName:        "HUST",
			Introduction:     "Trường đại học kỹ thuật đa ngành hàng đầu Việt Nam.",
			OfficialWebsite:  "https://hust.edu.vn",
			AdmissionWebsite: "https://ts.hust.edu.vn",
			Ranking:          intPtr(1),
			RankingCriteria:  "Xếp hạng kỹ thuật trong nước",
			Type:             model.UniversityTypePublic,
			Locations:        "Số 1 Đại Cồ Việt, Hà Nội",
			AcademicPrograms: []model.AcademicProgram{
				{Name: "Chương trình chuẩn", Tuition: floatPtr(24000000), TuitionUnit: "VNĐ/năm", Year: &year},
				{Name: "Chương trình Elitech", Description: "Chương trình kỹ sư tài năng, chất lượng cao", Tuition: floatPtr(40000000), TuitionUnit: "VNĐ/năm", Year: &year},
			},
			AdmissionMethods: []model.AdmissionMethod{
				{Name: "Xét tuyển tài năng", Description: "Xét tuyển thẳng và xét hồ sơ năng lực", Year: &year},
				{Name: "Đánh giá tư duy", Description: "Xét điểm bài thi đánh giá tư duy do trường tổ chức", Year: &year},
			},
		},
		{
			Name:             "Trường Đại học Kinh tế Quốc dân",
			ShortName:        "NEU",
			Introduction:     "Trường đại học trọng điểm quốc gia về kinh tế và quản trị kinh doanh.",
			OfficialWebsite:  "https://neu.edu.vn",
			AdmissionWebsite: "https://tuyensinh.neu.edu.vn",
			Type:             model.UniversityTypePublic,
			Locations:        "207 Giải Phóng, Hà Nội",
			Scholarships: []model.Scholarship{
				{Name: "Học bổng khuyến khích học tập", Description: "Dành cho sinh viên có kết quả học tập tốt", Value: floatPtr(10000000), ValueType: "VNĐ", Criteria: "GPA từ 3.2"},
			},
		},
	}

	if err := s.db.Create(&universities).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d universities\n", len(universities))
	return nil
}

// SeedMajors creates sample majors linked to the seeded universities
func (s *Seeder) SeedMajors() error {
	var count int64
	if err := s.db.Model(&model.Major{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Majors already exist, skipping...")
		return nil
	}

	var universities []model.University
	if err := s.db.Preload("AcademicPrograms").Order("id ASC").Find(&universities).Error; err != nil {
		return err
	}

	if len(universities) < 3 {
		return fmt.Errorf("no universities found, seed universities first")
	}

	fpt, hust, neu := universities[0], universities[1], universities[2]
	year := 2024

	majors := []model.Major{
		{UniversityID: fpt.ID, Name: "Công nghệ thông tin", Code: "7480201", Description: "Kỹ thuật phần mềm, trí tuệ nhân tạo, an toàn thông tin", Year: &year, AcademicProgramID: programID(fpt, 0)},
		{UniversityID: fpt.ID, Name: "Quản trị kinh doanh", Code: "7340101", Year: &year, AcademicProgramID: programID(fpt, 0)},
		{UniversityID: fpt.ID, Name: "Ngôn ngữ Anh", Code: "7220201", Year: &year, AcademicProgramID: programID(fpt, 0)},
		{UniversityID: hust.ID, Name: "Khoa học máy tính", Code: "IT1", AdmissionScore: floatPtr(28.53), Year: &year, AcademicProgramID: programID(hust, 0)},
		{UniversityID: hust.ID, Name: "Kỹ thuật máy tính", Code: "IT2", AdmissionScore: floatPtr(28.16), Year: &year, AcademicProgramID: programID(hust, 0)},
		{UniversityID: hust.ID, Name: "Công nghệ thông tin Việt - Nhật", Code: "IT-E6", AdmissionScore: floatPtr(27.02), Year: &year, AcademicProgramID: programID(hust, 1)},
		{UniversityID: neu.ID, Name: "Kinh tế quốc tế", Code: "7310106", AdmissionScore: floatPtr(27.6), Year: &year},
		{UniversityID: neu.ID, Name: "Kế toán", Code: "7340301", AdmissionScore: floatPtr(27.05), Year: &year},
	}

	if err := s.db.Create(&majors).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d majors\n", len(majors))
	return nil
}

// SeedAdmissionScores creates one cut-off score per seeded major that carries one
func (s *Seeder) SeedAdmissionScores() error {
	var count int64
	if err := s.db.Model(&model.AdmissionScore{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admission scores already exist, skipping...")
		return nil
	}

	var majors []model.Major
	if err := s.db.Where("admission_score IS NOT NULL").Order("id ASC").Find(&majors).Error; err != nil {
		return err
	}

	scores := make([]model.AdmissionScore, 0, len(majors))
	for _, m := range majors {
		scores = append(scores, model.AdmissionScore{
			MajorID:            m.ID,
			Year:               2024,
			Score:              *m.AdmissionScore,
			SubjectCombination: "A00, A01",
		})
	}

	if len(scores) == 0 {
		return nil
	}

	if err := s.db.Create(&scores).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d admission scores\n", len(scores))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}

func programID(u model.University, idx int) *uint {
	if idx >= len(u.AcademicPrograms) {
		return nil
	}
	id := u.AcademicPrograms[idx].ID
	return &id
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}
