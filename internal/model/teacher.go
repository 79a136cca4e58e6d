package model

// Teacher is a teaching staff member. Maps to teachers.
type Teacher struct {
	TeacherID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	NIP       string  `gorm:"type:varchar(30);not null;uniqueIndex"          json:"nip"` // national employee id
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"`
	SubjectID *string `gorm:"type:uuid"                                      json:"subject_id,omitempty"`
	SoftDeleteModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

func (Teacher) TableName() string { return "teachers" }
