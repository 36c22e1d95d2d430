package admission

import (
	"context"
	"fmt"

	"github.com/tuyensinh/admission-advisor/model"
	"gorm.io/gorm"
)

// Catalog is the read-only view of the admission data the retriever needs.
// Each method returns the full collection with its relations resolved.
type Catalog interface {
	Universities(ctx context.Context) ([]model.University, error)
	Majors(ctx context.Context) ([]model.Major, error)
	AcademicPrograms(ctx context.Context) ([]model.AcademicProgram, error)
	AdmissionMethods(ctx context.Context) ([]model.AdmissionMethod, error)
	AdmissionCriteria(ctx context.Context) ([]model.AdmissionCriteria, error)
	AdmissionScores(ctx context.Context) ([]model.AdmissionScore, error)
	AdmissionNews(ctx context.Context) ([]model.AdmissionNew, error)
	Scholarships(ctx context.Context) ([]model.Scholarship, error)
}

// GORMCatalog reads the catalog from the relational store
type GORMCatalog struct {
	db *gorm.DB
}

// NewGORMCatalog creates a catalog backed by db
func NewGORMCatalog(db *gorm.DB) *GORMCatalog {
	return &GORMCatalog{db: db}
}

func (c *GORMCatalog) Universities(ctx context.Context) ([]model.University, error) {
	var out []model.University
	if err := c.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch universities: %w", err)
	}
	return out, nil
}

func (c *GORMCatalog) Majors(ctx context.Context) ([]model.Major, error) {
	var out []model.Major
	err := c.db.WithContext(ctx).
		Preload("University").
		Preload("AcademicProgram").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch majors: %w", err)
	}
	return out, nil
}

func (c *GORMCatalog) AcademicPrograms(ctx context.Context) ([]model.AcademicProgram, error) {
	var out []model.AcademicProgram
	if err := c.db.WithContext(ctx).Preload("University").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch academic programs: %w", err)
	}
	return out, nil
}

func (c *GORMCatalog) AdmissionMethods(ctx context.Context) ([]model.AdmissionMethod, error) {
	var out []model.AdmissionMethod
	if err := c.db.WithContext(ctx).Preload("University").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch admission methods: %w", err)
	}
	return out, nil
}

func (c *GORMCatalog) AdmissionCriteria(ctx context.Context) ([]model.AdmissionCriteria, error) {
	var out []model.AdmissionCriteria
	if err := c.db.WithContext(ctx).Preload("AdmissionMethod").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch admission criteria: %w", err)
	}
	return out, nil
}

func (c *GORMCatalog) AdmissionScores(ctx context.Context) ([]model.AdmissionScore, error) {
	var out []model.AdmissionScore
	err := c.db.WithContext(ctx).
		Preload("Major.University").
		Preload("AdmissionMethod").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admission scores: %w", err)
	}
	return out, nil
}

func (c *GORMCatalog) AdmissionNews(ctx context.Context) ([]model.AdmissionNew, error) {
	var out []model.AdmissionNew
	if err := c.db.WithContext(ctx).Preload("University").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch admission news: %w", err)
	}
	return out, nil
}

func (c *GORMCatalog) Scholarships(ctx context.Context) ([]model.Scholarship, error) {
	var out []model.Scholarship
	if err := c.db.WithContext(ctx).Preload("University").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch scholarships: %w", err)
	}
	return out, nil
}
