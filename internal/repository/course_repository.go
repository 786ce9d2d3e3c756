package repository

import (
	"eduscore_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByCode(code string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("code = ?", code).First(&course).Error
	return &course, err
}

func (r *CourseRepository) ListByTeacher(teacherID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at desc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByStudent(studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Table("courses c").
		Joins("JOIN enrollments e ON e.course_id = c.id").
		Where("e.student_id = ? AND e.deleted_at IS NULL AND c.deleted_at IS NULL", studentID).
		Order("e.created_at desc").
		Select("c.*").
		Scan(&courses).Error
	return courses, err
}

func (r *CourseRepository) CountByTeacher(teacherID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("teacher_id = ?", teacherID).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CreateEnrollment(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

// IsEnrolled is the narrow check the quiz core consumes.
func (r *CourseRepository) IsEnrolled(studentID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

// IsOwner reports whether the teacher owns the course.
func (r *CourseRepository) IsOwner(teacherID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("id = ? AND teacher_id = ?", courseID, teacherID).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) CountDistinctStudentsByTeacher(teacherID uint) (int64, error) {
	var count int64
	err := r.DB.Table("enrollments e").
		Joins("JOIN courses c ON c.id = e.course_id").
		Where("c.teacher_id = ? AND e.deleted_at IS NULL AND c.deleted_at IS NULL", teacherID).
		Distinct("e.student_id").
		Count(&count).Error
	return count, err
}
