package model

// SchoolClass is a homeroom class (e.g. "10A"). Maps to school_classes.
type SchoolClass struct {
	ClassID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name    string `gorm:"type:varchar(50);not null"                      json:"name"`
	Grade   int    `gorm:"type:smallint;not null"                         json:"grade"`
	SoftDeleteModel
}

func (SchoolClass) TableName() string { return "school_classes" }
