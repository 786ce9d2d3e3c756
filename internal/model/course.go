package model

// Course is created and managed by a single teacher. Students join it
// through the unique join code.
// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:150;not null" json:"title"`
	Code        string `gorm:"size:20;unique;not null" json:"code"`
	Description string `gorm:"type:text" json:"description"`
	TeacherID   uint   `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Teacher     *User  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment links a student to a course. One row per (student, course).
type Enrollment struct {
	BaseModel
	StudentID uint    `gorm:"uniqueIndex:idx_enrollment_student_course;type:bigint unsigned" json:"studentId"`
	CourseID  uint    `gorm:"uniqueIndex:idx_enrollment_student_course;type:bigint unsigned" json:"courseId"`
	Student   *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course    *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
