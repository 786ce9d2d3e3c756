package service

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"eduscore_backend/internal/model"
	"eduscore_backend/internal/repository"
	"eduscore_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo}
}

type CreateCourseReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// joinCodeAlphabet skips easily confused characters (0/O, 1/I).
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func (s *CourseService) CreateCourse(teacherID uint, req CreateCourseReq) (*model.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.Validationf("title is required")
	}

	course := &model.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		TeacherID:   teacherID,
	}

	// Retry on the rare join-code collision; the unique column decides.
	for i := 0; i < 5; i++ {
		code, err := generateJoinCode(6)
		if err != nil {
			return nil, err
		}
		course.Code = code
		err = s.CourseRepo.Create(course)
		if err == nil {
			return course, nil
		}
		if !strings.Contains(err.Error(), "Duplicate entry") &&
			!strings.Contains(err.Error(), "UNIQUE constraint failed") &&
			!errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, util.ErrPersistence
}

// JoinByCode enrolls the student into the course behind the join code.
// Joining twice is a no-op returning the same course.
func (s *CourseService) JoinByCode(studentID uint, code string) (*model.Course, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, util.Validationf("join code is required")
	}

	course, err := s.CourseRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	enrolled, err := s.CourseRepo.IsEnrolled(studentID, course.ID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return course, nil
	}

	enrollment := &model.Enrollment{
		StudentID: studentID,
		CourseID:  course.ID,
	}
	if err := s.CourseRepo.CreateEnrollment(enrollment); err != nil {
		// Concurrent join; the unique index kept one row, which is fine.
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "Duplicate entry") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return course, nil
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListForTeacher(teacherID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByTeacher(teacherID)
}

func (s *CourseService) ListForStudent(studentID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByStudent(studentID)
}

func (s *CourseService) GetCourse(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func generateJoinCode(length int) (string, error) {
	code := make([]byte, length)
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
