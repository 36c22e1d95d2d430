package model

import "time"

// UniversityType is the ownership category of a university
type UniversityType string

const (
	UniversityTypePublic  UniversityType = "Công lập"
	UniversityTypePrivate UniversityType = "Tư thục"
)

// University represents a higher-education institution offering admissions
type University struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	ShortName        string         `gorm:"type:varchar(50);index" json:"short_name"` // e.g. "FPT", "HUST"
	Introduction     string         `gorm:"type:text" json:"introduction"`
	OfficialWebsite  string         `gorm:"type:varchar(255)" json:"official_website"`
	AdmissionWebsite string         `gorm:"type:varchar(255)" json:"admission_website"`
	Ranking          *int           `json:"ranking,omitempty"`
	RankingCriteria  string         `gorm:"type:varchar(255)" json:"ranking_criteria"`
	Locations        string         `gorm:"type:text" json:"locations"`
	Type             UniversityType `gorm:"type:varchar(20)" json:"type"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// Relationships
	Majors           []Major           `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"majors,omitempty"`
	AdmissionMethods []AdmissionMethod `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"admission_methods,omitempty"`
	AdmissionNews    []AdmissionNew    `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"admission_news,omitempty"`
	AcademicPrograms []AcademicProgram `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"academic_programs,omitempty"`
	Scholarships     []Scholarship     `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"scholarships,omitempty"`
}
