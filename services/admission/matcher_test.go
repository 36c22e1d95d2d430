package admission

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuyensinh/admission-advisor/model"
)

func university(id uint, name, short string) model.University {
	return model.University{ID: id, Name: name, ShortName: short}
}

func major(id uint, uni *model.University, name string) model.Major {
	return model.Major{ID: id, Name: name, Code: fmt.Sprintf("M%d", id), UniversityID: uni.ID, University: uni}
}

func majorIDs(list []model.Major) []uint {
	ids := make([]uint, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	return ids
}

func universityIDs(list []model.University) []uint {
	ids := make([]uint, 0, len(list))
	for _, u := range list {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestMatchMajorCountReturnsAllMajorsOfNamedUniversity(t *testing.T) {
	fpt := university(1, "Trường Đại học FPT", "FPT")
	neu := university(2, "Kinh tế Quốc dân", "NEU")
	ptit := university(3, "Viện Bưu chính Viễn thông", "PTIT")
	universities := []model.University{fpt, neu, ptit}

	var majors []model.Major
	for i := uint(1); i <= 12; i++ {
		majors = append(majors, major(i, &fpt, fmt.Sprintf("Ngành %02d", i)))
	}
	majors = append(majors, major(20, &neu, "Kế toán"), major(21, &ptit, "Viễn thông"))

	query := "Đại học FPT có bao nhiều ngành"
	require.Equal(t, IntentMajorCount, ClassifyIntent(query))

	got := MatchMajors(query, IntentMajorCount, majors, universities)
	require.Len(t, got, 12)
	for _, m := range got {
		assert.Equal(t, fpt.ID, m.UniversityID)
	}

	b := NewContextBuilder()
	b.MajorCounts(got)
	assert.Contains(t, b.String(), "📊 Trường Đại học FPT có tổng cộng 12 ngành đào tạo:")
	assert.Equal(t, 1, countOccurrences(b.String(), "📊"))
}

func TestMatchCountUniversitiesPriorityAndCap(t *testing.T) {
	var universities []model.University
	for i := uint(1); i <= 7; i++ {
		universities = append(universities, university(i, fmt.Sprintf("Đại học số %d", i), fmt.Sprintf("U%d", i)))
	}
	hust := university(8, "Đại học Bách khoa Hà Nội", "HUST")
	universities = append(universities, hust)

	got := MatchCountUniversities([]string{"HUST", "Đại"}, universities)
	require.Len(t, got, MaxCountUniversities)
	assert.Equal(t, hust.ID, got[0].ID, "short-name match comes first")
	assert.Equal(t, []uint{8, 1, 2, 3, 4}, universityIDs(got))
}

func TestMatchCountUniversitiesSpecialKeyword(t *testing.T) {
	hust := university(1, "Đại học Bách khoa Hà Nội", "HUST")
	neu := university(2, "Kinh tế Quốc dân", "NEU")

	got := MatchCountUniversities([]string{"Bách", "khoa"}, []model.University{neu, hust})
	assert.Equal(t, []uint{hust.ID}, universityIDs(got))
}

func TestMatchMajorCountFallsBackToMajorUniversityNames(t *testing.T) {
	fpt := university(1, "Trường Đại học FPT", "FPT")
	majors := []model.Major{major(1, &fpt, "Công nghệ thông tin"), major(2, &fpt, "Ngôn ngữ Anh")}

	got := MatchMajorCount("FPT có mấy ngành", majors, nil)
	assert.Equal(t, []uint{1, 2}, majorIDs(got))

	assert.Empty(t, MatchMajorCount("có mấy ngành", majors, nil))
}

func TestMatchProgramExistence(t *testing.T) {
	fpt := university(1, "Trường Đại học FPT", "FPT")
	hust := university(2, "Đại học Bách khoa Hà Nội", "HUST")
	majors := []model.Major{
		major(1, &fpt, "Công nghệ thông tin"),
		major(2, &fpt, "Ngôn ngữ Anh"),
		major(3, &hust, "Công nghệ thông tin Việt - Nhật"),
		major(4, &hust, "Kỹ thuật máy tính"),
	}

	query := "trường có ngành Công nghệ thông tin"
	require.Equal(t, IntentProgramExistence, ClassifyIntent(query))

	got := MatchMajors(query, IntentProgramExistence, majors, nil)
	assert.Equal(t, []uint{1, 3}, majorIDs(got))

	assert.Empty(t, MatchProgramExistence("trường nào có ngành", majors))
}

func TestGeneralMatchMajorNameContainment(t *testing.T) {
	fpt := university(1, "Đại học FPT", "FPT")
	neu := university(2, "Đại học Kinh tế Quốc dân", "NEU")
	majors := []model.Major{
		major(1, &fpt, "Công nghệ thông tin"),
		major(2, &fpt, "Ngôn ngữ Anh"),
		major(3, &neu, "Kế toán"),
		major(4, &neu, "Công nghệ thông tin"),
		major(5, &neu, "Quản trị kinh doanh"),
	}
	majors[0].Description = "Chương trình ngành Công nghệ thông tin chuẩn quốc tế"

	query := "ngành Công nghệ thông tin"
	tiers := GeneralTiers(query, majors)
	byName := make(map[string][]uint)
	for _, tier := range tiers {
		byName[tier.Name] = majorIDs(tier.Majors)
	}
	assert.Equal(t, []uint{1}, byName["major_contains_query"])
	assert.Empty(t, byName["short_name"])
	assert.Empty(t, byName["university_contains_query"])

	got := MatchMajors(query, IntentGeneral, majors, nil)
	assert.Equal(t, []uint{1, 4}, majorIDs(got))
}

func TestGeneralTiersShortNameOutranksLooseOverlap(t *testing.T) {
	hust := university(1, "Đại học Bách khoa Hà Nội", "HUST")
	neu := university(2, "Đại học Kinh tế Quốc dân", "NEU")
	majors := []model.Major{
		major(1, &neu, "Kinh tế HUST liên kết"),
		major(2, &hust, "Khoa học máy tính"),
		major(3, &hust, "Kỹ thuật máy tính"),
	}

	got := MatchMajors("HUST", IntentGeneral, majors, nil)
	assert.Equal(t, []uint{2, 3, 1}, majorIDs(got))
}

func TestGeneralTiersFullNameRatio(t *testing.T) {
	hust := university(1, "Đại học Bách khoa Hà Nội", "HUST")
	hcmut := university(2, "Đại học Bách khoa TP.HCM", "HCMUT")
	majors := []model.Major{major(1, &hcmut, "Cơ khí"), major(2, &hust, "Cơ khí")}

	tiers := GeneralTiers("điểm chuẩn Bách khoa Nội", majors)
	require.Equal(t, "full_name_ratio", tiers[0].Name)
	assert.Equal(t, []uint{2}, majorIDs(tiers[0].Majors))

	tiers = GeneralTiers("đại học có", majors)
	assert.Empty(t, tiers[0].Majors, "no important words means no full-name match")
}

func TestGeneralTiersCuratedKeyword(t *testing.T) {
	hust := university(1, "Đại học Bách khoa Hà Nội", "HUST")
	fpt := university(2, "Trường Đại học FPT", "FPT")
	majors := []model.Major{major(1, &fpt, "Ngôn ngữ Anh"), major(2, &hust, "Cơ khí")}

	tiers := GeneralTiers("học phí khoa", majors)
	var curated Tier
	for _, tier := range tiers {
		if tier.Name == "curated_keyword" {
			curated = tier
		}
	}
	assert.Equal(t, []uint{2}, majorIDs(curated.Majors))
}

func TestMergeTiersKeepsFirstPosition(t *testing.T) {
	uni := university(1, "U", "U")
	m := func(id uint) model.Major { return major(id, &uni, "x") }

	got := MergeTiers([]Tier{
		{Name: "a", Majors: []model.Major{m(3), m(1)}},
		{Name: "b", Majors: []model.Major{m(1), m(2), m(3)}},
		{Name: "c", Majors: []model.Major{m(4), m(2)}},
	}, MaxGeneralMajors)
	assert.Equal(t, []uint{3, 1, 2, 4}, majorIDs(got))
}

func TestGeneralMatchTruncatesToTwenty(t *testing.T) {
	fpt := university(1, "Trường Đại học FPT", "FPT")
	var majors []model.Major
	for i := uint(1); i <= 30; i++ {
		majors = append(majors, major(i, &fpt, fmt.Sprintf("Ngành %d", i)))
	}

	got := MatchMajors("FPT", IntentGeneral, majors, nil)
	require.Len(t, got, MaxGeneralMajors)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(20), got[19].ID)
}

func TestMajorsWithoutUniversityDoNotPanic(t *testing.T) {
	majors := []model.Major{{ID: 1, Name: "Công nghệ thông tin"}}
	got := MatchMajors("Công nghệ FPT", IntentGeneral, majors, nil)
	assert.Equal(t, []uint{1}, majorIDs(got))
}

func TestSimpleCollectionMatchers(t *testing.T) {
	fpt := university(1, "Trường Đại học FPT", "FPT")
	fpt.Introduction = "Đại học tư thục đào tạo công nghệ"
	neu := university(2, "Kinh tế Quốc dân", "NEU")

	t.Run("universities match introduction", func(t *testing.T) {
		got := MatchUniversities("tư thục", []model.University{neu, fpt})
		assert.Equal(t, []uint{1}, universityIDs(got))
	})

	t.Run("methods are capped", func(t *testing.T) {
		var methods []model.AdmissionMethod
		for i := uint(1); i <= 12; i++ {
			methods = append(methods, model.AdmissionMethod{ID: i, Name: "Xét học bạ"})
		}
		assert.Len(t, MatchAdmissionMethods("HỌC BẠ", methods), MaxAdmissionMethods)
	})

	t.Run("criteria match description", func(t *testing.T) {
		got := MatchAdmissionCriteria("ielts", []model.AdmissionCriteria{
			{ID: 1, Name: "Chứng chỉ", Description: "IELTS 6.0"},
			{ID: 2, Name: "Học bạ"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("scores match university through major", func(t *testing.T) {
		m := major(1, &fpt, "Ngôn ngữ Anh")
		got := MatchAdmissionScores("fpt", []model.AdmissionScore{
			{ID: 1, Major: &m, Score: 21, Year: 2024},
			{ID: 2, Score: 25, Year: 2024},
		})
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("news newest first", func(t *testing.T) {
		var news []model.AdmissionNew
		for i := 1; i <= 7; i++ {
			news = append(news, model.AdmissionNew{
				ID:          uint(i),
				Title:       "Tuyển sinh FPT",
				PublishDate: time.Date(2024, time.Month(i), 1, 0, 0, 0, 0, time.UTC),
			})
		}
		got := MatchAdmissionNews("tuyển sinh", news)
		require.Len(t, got, MaxAdmissionNews)
		assert.Equal(t, uint(7), got[0].ID)
		assert.Equal(t, uint(3), got[4].ID)
	})

	t.Run("scholarships match criteria", func(t *testing.T) {
		got := MatchScholarships("giải quốc gia", []model.Scholarship{
			{ID: 1, Name: "Học bổng tài năng", Criteria: "Đạt giải quốc gia"},
			{ID: 2, Name: "Học bổng khuyến khích"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})
}

func TestProgramsForMajors(t *testing.T) {
	fpt := university(1, "Trường Đại học FPT", "FPT")
	programs := []model.AcademicProgram{
		{ID: 1, Name: "Chuẩn", UniversityID: 2},
		{ID: 2, Name: "Chuẩn", UniversityID: 1},
		{ID: 3, Name: "Quốc tế", UniversityID: 1},
	}
	got := ProgramsForMajors([]model.Major{major(1, &fpt, "A"), major(2, &fpt, "B")}, programs)
	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(3), got[1].ID)
}
