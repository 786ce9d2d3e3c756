package model

// Option labels a question can use for its correct answer.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID    uint    `gorm:"index;type:bigint unsigned" json:"courseId"`
	Course      *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	TotalMarks  int     `gorm:"default:0" json:"totalMarks"` // derived: sum of question marks
	TimeLimit   int     `gorm:"default:10" json:"timeLimit"` // minutes, advisory only
	CreatedByID uint    `gorm:"index;type:bigint unsigned" json:"createdById"`
	CreatedBy   *User   `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	IsPublished bool    `gorm:"default:false" json:"isPublished"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question holds four fixed options; CorrectOption is one of A/B/C/D.
// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint   `gorm:"index;type:bigint unsigned" json:"quizId"`
	Text          string `gorm:"type:text;not null" json:"text"`
	OptionA       string `gorm:"size:255;not null" json:"optionA"`
	OptionB       string `gorm:"size:255;not null" json:"optionB"`
	OptionC       string `gorm:"size:255;not null" json:"optionC"`
	OptionD       string `gorm:"size:255;not null" json:"optionD"`
	CorrectOption string `gorm:"size:1;not null" json:"-"`
	Marks         int    `gorm:"default:1" json:"marks"`
}

func (Question) TableName() string {
	return "questions"
}
