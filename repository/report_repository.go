package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

// ReportRepository is the write-through archive behind the in-memory store.
// It is best-effort persistence, not the source of truth.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// LoadAll returns every archived report in insertion order.
// sqlite's implicit rowid reflects insert order for this table.
func (r *ReportRepository) LoadAll() ([]entity.CrimeReport, error) {
	var out []entity.CrimeReport
	if err := r.db.Order("rowid").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReportRepository) Save(report *entity.CrimeReport) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) Update(report *entity.CrimeReport) error {
	return r.db.Save(report).Error
}

func (r *ReportRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.CrimeReport{}).Count(&n).Error
	return n, err
}
