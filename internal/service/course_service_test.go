package service

import (
	"strings"
	"testing"

	"eduscore_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseGeneratesJoinCode(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.courses)

	course, err := svc.CreateCourse(f.teacher.ID, CreateCourseReq{Title: "  Physics  "})
	require.NoError(t, err)

	assert.Equal(t, "Physics", course.Title)
	assert.Len(t, course.Code, 6)
	for _, r := range course.Code {
		assert.Contains(t, joinCodeAlphabet, string(r))
	}
}

func TestCreateCourseValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.courses)

	_, err := svc.CreateCourse(f.teacher.ID, CreateCourseReq{Title: "   "})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestJoinByCode(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.courses)

	newcomer := f.newStudent(t, "newcomer@example.com", false)

	// codes are matched case-insensitively
	course, err := svc.JoinByCode(newcomer.ID, strings.ToLower(" "+f.course.Code+" "))
	require.NoError(t, err)
	assert.Equal(t, f.course.ID, course.ID)

	enrolled, err := f.courses.IsEnrolled(newcomer.ID, f.course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestJoinByCodeIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.courses)

	course, err := svc.JoinByCode(f.student.ID, f.course.Code)
	require.NoError(t, err)
	assert.Equal(t, f.course.ID, course.ID)

	courses, err := svc.ListForStudent(f.student.ID)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestJoinByCodeUnknown(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.courses)

	_, err := svc.JoinByCode(f.student.ID, "NOPE99")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = svc.JoinByCode(f.student.ID, "   ")
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestGenerateJoinCodeAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateJoinCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}
