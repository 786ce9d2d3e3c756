package service

import (
	"math"
	"time"

	"eduscore_backend/internal/model"
	"eduscore_backend/internal/repository"
	"eduscore_backend/internal/util"
)

type PerformanceService struct {
	AttemptRepo  *repository.AttemptRepository
	QuizRepo     *repository.QuizRepository
	CourseRepo   *repository.CourseRepository
	MaterialRepo *repository.MaterialRepository
	FeedSize     int
}

func NewPerformanceService(
	attemptRepo *repository.AttemptRepository,
	quizRepo *repository.QuizRepository,
	courseRepo *repository.CourseRepository,
	materialRepo *repository.MaterialRepository,
	feedSize int,
) *PerformanceService {
	return &PerformanceService{
		AttemptRepo:  attemptRepo,
		QuizRepo:     quizRepo,
		CourseRepo:   courseRepo,
		MaterialRepo: materialRepo,
		FeedSize:     feedSize,
	}
}

// HistoryEntry is one row of a student's attempt history.
type HistoryEntry struct {
	AttemptID   uint       `json:"attemptId"`
	QuizTitle   string     `json:"quizTitle"`
	SubmittedAt *time.Time `json:"submittedAt"`
	Score       float64    `json:"score"`
	TotalMarks  int        `json:"totalMarks"`
	Feedback    string     `json:"feedback"`
}

// StudentCourseStats aggregates a student's attempts within one course.
// A student with no attempts is a valid zero state, not an error.
type StudentCourseStats struct {
	Highest float64        `json:"highest"`
	Lowest  float64        `json:"lowest"`
	Average float64        `json:"average"`
	History []HistoryEntry `json:"history"`
}

func (s *PerformanceService) StudentCourseStats(studentID, courseID uint) (*StudentCourseStats, error) {
	attempts, err := s.AttemptRepo.ListByStudentAndCourse(studentID, courseID)
	if err != nil {
		return nil, err
	}

	stats := &StudentCourseStats{History: []HistoryEntry{}}
	if len(attempts) == 0 {
		return stats, nil
	}

	var sum float64
	stats.Highest = attempts[0].Score
	stats.Lowest = attempts[0].Score
	for _, a := range attempts {
		if a.Score > stats.Highest {
			stats.Highest = a.Score
		}
		if a.Score < stats.Lowest {
			stats.Lowest = a.Score
		}
		sum += a.Score

		entry := HistoryEntry{
			AttemptID:   a.ID,
			SubmittedAt: a.SubmittedAt,
			Score:       a.Score,
			TotalMarks:  a.TotalMarks,
			Feedback:    a.Feedback,
		}
		if a.Quiz != nil {
			entry.QuizTitle = a.Quiz.Title
		}
		if entry.Feedback == "" {
			entry.Feedback = util.DefaultAttemptFeedback
		}
		stats.History = append(stats.History, entry)
	}

	stats.Average = round2(sum / float64(len(attempts)))
	return stats, nil
}

// ActivityEntry is one row of the teacher's recent-attempt feed.
type ActivityEntry struct {
	AttemptID    uint       `json:"attemptId"`
	QuizTitle    string     `json:"quizTitle"`
	StudentName  string     `json:"studentName"`
	StudentEmail string     `json:"studentEmail"`
	Score        float64    `json:"score"`
	TotalMarks   int        `json:"totalMarks"`
	SubmittedAt  *time.Time `json:"submittedAt"`
}

// TeacherOverview is the teacher dashboard payload.
type TeacherOverview struct {
	CourseCount    int64           `json:"courseCount"`
	StudentCount   int64           `json:"studentCount"`
	QuizCount      int64           `json:"quizCount"`
	MaterialCount  int64           `json:"materialCount"`
	AverageScore   float64         `json:"averageScore"`
	RecentAttempts []ActivityEntry `json:"recentAttempts"`
}

func (s *PerformanceService) TeacherOverview(teacherID uint) (*TeacherOverview, error) {
	overview := &TeacherOverview{RecentAttempts: []ActivityEntry{}}

	var err error
	if overview.CourseCount, err = s.CourseRepo.CountByTeacher(teacherID); err != nil {
		return nil, err
	}
	if overview.StudentCount, err = s.CourseRepo.CountDistinctStudentsByTeacher(teacherID); err != nil {
		return nil, err
	}
	if overview.QuizCount, err = s.QuizRepo.CountByTeacher(teacherID); err != nil {
		return nil, err
	}
	if overview.MaterialCount, err = s.MaterialRepo.CountByTeacher(teacherID); err != nil {
		return nil, err
	}

	avg, err := s.AttemptRepo.AverageScoreByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	overview.AverageScore = round2(avg)

	recent, err := s.AttemptRepo.ListRecentByTeacher(teacherID, s.FeedSize)
	if err != nil {
		return nil, err
	}
	for _, a := range recent {
		entry := ActivityEntry{
			AttemptID:   a.ID,
			Score:       a.Score,
			TotalMarks:  a.TotalMarks,
			SubmittedAt: a.SubmittedAt,
		}
		if a.Quiz != nil {
			entry.QuizTitle = a.Quiz.Title
		}
		if a.Student != nil {
			entry.StudentName = studentDisplayName(a.Student)
			entry.StudentEmail = a.Student.Email
		}
		overview.RecentAttempts = append(overview.RecentAttempts, entry)
	}

	return overview, nil
}

func studentDisplayName(u *model.User) string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
