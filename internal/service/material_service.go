package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"eduscore_backend/internal/model"
	"eduscore_backend/internal/repository"
	"eduscore_backend/internal/util"
)

type MaterialService struct {
	MaterialRepo *repository.MaterialRepository
	Courses      OwnershipChecker
	Storage      *StorageService
}

func NewMaterialService(materialRepo *repository.MaterialRepository, courses OwnershipChecker, storage *StorageService) *MaterialService {
	return &MaterialService{MaterialRepo: materialRepo, Courses: courses, Storage: storage}
}

// Upload stores the file through the configured provider and records the
// material against the teacher's course.
func (s *MaterialService) Upload(ctx context.Context, teacherID, courseID uint, title string, header *multipart.FileHeader) (*model.Material, error) {
	if title == "" {
		return nil, util.Validationf("title is required")
	}

	owns, err := s.Courses.IsOwner(teacherID, courseID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, util.ErrNotCourseOwner
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	filename := fmt.Sprintf("materials/%d/%d%s", courseID, time.Now().UnixNano(), filepath.Ext(header.Filename))

	url, err := s.Storage.Upload(ctx, filename, file, header.Size, contentType)
	if err != nil {
		return nil, err
	}

	material := &model.Material{
		CourseID:    courseID,
		Title:       title,
		FileURL:     url,
		ContentType: contentType,
	}
	if err := s.MaterialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) ListForTeacher(teacherID, courseID uint) ([]model.Material, error) {
	owns, err := s.Courses.IsOwner(teacherID, courseID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, util.ErrNotCourseOwner
	}
	return s.MaterialRepo.ListByCourse(courseID)
}

func (s *MaterialService) ListForStudent(studentID, courseID uint) ([]model.Material, error) {
	enrolled, err := s.Courses.IsEnrolled(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}
	return s.MaterialRepo.ListByCourse(courseID)
}
