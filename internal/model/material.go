package model

// swagger:model Material
type Material struct {
	BaseModel
	CourseID    uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title       string `gorm:"size:150;not null" json:"title"`
	FileURL     string `gorm:"size:512" json:"fileUrl"`
	ContentType string `gorm:"size:100" json:"contentType"`
	Summary     string `gorm:"type:text" json:"summary"`
}

func (Material) TableName() string {
	return "materials"
}
