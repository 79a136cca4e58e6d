package model

// Semester halves of an academic year: July–December is odd, January–June
// is even.
const (
	SemesterOdd  = "odd"
	SemesterEven = "even"
)

// Schedule is one class period: a subject taught to a class on a fixed
// weekday and time range within one academic year and semester. Maps to
// the schedules table.
//
// Times are zero-padded "HH:MM" strings; lexicographic comparison matches
// chronological order, which the conflict engine relies on. Intervals are
// half-open [start, end): a period ending exactly when another starts does
// not collide with it.
type Schedule struct {
	ScheduleID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	ClassID      string  `gorm:"type:uuid;not null"                             json:"class_id"`
	SubjectID    string  `gorm:"type:uuid;not null"                             json:"subject_id"`
	TeacherID    *string `gorm:"type:uuid"                                      json:"teacher_id,omitempty"`
	DayOfWeek    int     `gorm:"type:smallint;not null"                         json:"day_of_week"` // 1=Monday … 7=Sunday
	StartTime    string  `gorm:"type:time;not null"                             json:"start_time"`  // "HH:MM"
	EndTime      string  `gorm:"type:time;not null"                             json:"end_time"`    // "HH:MM"
	Room         string  `gorm:"type:varchar(50)"                               json:"room,omitempty"`
	AcademicYear string  `gorm:"type:varchar(9);not null"                       json:"academic_year"` // "2024/2025"
	Semester     string  `gorm:"type:varchar(10);not null"                      json:"semester"`      // odd | even
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	Class   *SchoolClass `gorm:"foreignKey:ClassID;references:ClassID"     json:"class,omitempty"`
	Subject *Subject     `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Teacher *Teacher     `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }
