package model

import "time"

// Major is a field of study offered by a university
type Major struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	Code              string    `gorm:"type:varchar(50)" json:"code"`
	Description       string    `gorm:"type:text" json:"description"`
	AdmissionScore    *float64  `json:"admission_score,omitempty"`
	Year              *int      `json:"year,omitempty"`
	UniversityID      uint      `gorm:"not null;index" json:"university_id"`
	AcademicProgramID *uint     `gorm:"index" json:"academic_program_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	University      *University      `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	AcademicProgram *AcademicProgram `gorm:"foreignKey:AcademicProgramID;constraint:OnDelete:SET NULL" json:"academic_program,omitempty"`
}

// AcademicProgram is a study track (e.g. standard, high-quality) with its own tuition
type AcademicProgram struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Tuition      *float64  `json:"tuition,omitempty"`
	TuitionUnit  string    `gorm:"type:varchar(50)" json:"tuition_unit"` // e.g. "VNĐ/năm"
	Year         *int      `json:"year,omitempty"`
	UniversityID uint      `gorm:"not null;index" json:"university_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	Majors     []Major     `gorm:"foreignKey:AcademicProgramID" json:"majors,omitempty"`
}
