package model

import "time"

// AdmissionMethod describes one way a university admits students
type AdmissionMethod struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Criteria     string    `gorm:"type:text" json:"criteria"`
	Year         *int      `json:"year,omitempty"`
	UniversityID uint      `gorm:"not null;index" json:"university_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	University         *University         `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	AdmissionCriterias []AdmissionCriteria `gorm:"foreignKey:AdmissionMethodID;constraint:OnDelete:CASCADE" json:"admission_criterias,omitempty"`
}

// AdmissionCriteria is a single requirement of an admission method
type AdmissionCriteria struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	MinimumScore      *float64  `json:"minimum_score,omitempty"`
	AdmissionMethodID uint      `gorm:"not null;index" json:"admission_method_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	AdmissionMethod *AdmissionMethod `gorm:"foreignKey:AdmissionMethodID" json:"admission_method,omitempty"`
}

// TableName keeps the singular/plural form used by the admission schema
func (AdmissionCriteria) TableName() string {
	return "admission_criterias"
}

// AdmissionScore is the cut-off score of a major for one year and method.
// At most one row exists per (major, year, method); the unique index enforces it.
type AdmissionScore struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	MajorID            uint      `gorm:"not null;uniqueIndex:idx_score_major_year_method" json:"major_id"`
	Year               int       `gorm:"not null;uniqueIndex:idx_score_major_year_method" json:"year"`
	Score              float64   `gorm:"not null" json:"score"` // 0 - 30
	AdmissionMethodID  *uint     `gorm:"uniqueIndex:idx_score_major_year_method" json:"admission_method_id,omitempty"`
	Note               string    `gorm:"type:text" json:"note,omitempty"`
	SubjectCombination string    `gorm:"type:varchar(100)" json:"subject_combination,omitempty"` // e.g. "A00, A01"
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relationships
	Major           *Major           `gorm:"foreignKey:MajorID;constraint:OnDelete:CASCADE" json:"major,omitempty"`
	AdmissionMethod *AdmissionMethod `gorm:"foreignKey:AdmissionMethodID;constraint:OnDelete:SET NULL" json:"admission_method,omitempty"`
}

// AdmissionNew is a published admission news item
type AdmissionNew struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(500);not null" json:"title"`
	Content      string    `gorm:"type:text" json:"content"`
	PublishDate  time.Time `gorm:"index" json:"publish_date"`
	Year         *int      `json:"year,omitempty"`
	UniversityID uint      `gorm:"not null;index" json:"university_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
}

// TableName specifies the table name for AdmissionNew
func (AdmissionNew) TableName() string {
	return "admission_news"
}

// Scholarship offered by a university
type Scholarship struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Value        *float64  `json:"value,omitempty"`
	ValueType    string    `gorm:"type:varchar(50)" json:"value_type"` // e.g. "VNĐ", "% học phí"
	Criteria     string    `gorm:"type:text" json:"criteria"`
	Year         *int      `json:"year,omitempty"`
	UniversityID uint      `gorm:"not null;index" json:"university_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
}
