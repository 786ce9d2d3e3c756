package repository

import (
	"eduscore_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) ListByCourse(courseID uint) ([]model.Material, error) {
	var materials []model.Material
	err := r.DB.Where("course_id = ?", courseID).Order("created_at desc").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) CountByTeacher(teacherID uint) (int64, error) {
	var count int64
	err := r.DB.Table("materials m").
		Joins("JOIN courses c ON c.id = m.course_id").
		Where("c.teacher_id = ? AND m.deleted_at IS NULL AND c.deleted_at IS NULL", teacherID).
		Count(&count).Error
	return count, err
}
