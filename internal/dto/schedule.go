package dto

// ── requests ──

// CreateScheduleRequest creates one class period. AcademicYear and Semester
// may both be omitted; the service then resolves the current term from
// today's date. An explicitly supplied scope is never overridden.
type CreateScheduleRequest struct {
	ClassID      string  `json:"class_id"      binding:"required,uuid"`
	SubjectID    string  `json:"subject_id"    binding:"required,uuid"`
	TeacherID    *string `json:"teacher_id"    binding:"omitempty,uuid"`
	DayOfWeek    int     `json:"day_of_week"   binding:"required,min=1,max=7"`
	StartTime    string  `json:"start_time"    binding:"required"` // "HH:MM"
	EndTime      string  `json:"end_time"      binding:"required"` // "HH:MM"
	Room         string  `json:"room"          binding:"omitempty,max=50"`
	AcademicYear string  `json:"academic_year" binding:"omitempty"`
	Semester     string  `json:"semester"      binding:"omitempty,oneof=odd even"`
}

// UpdateScheduleRequest patches a period; nil fields keep their current
// value. The conflict check runs on the merged result with the period
// itself excluded.
type UpdateScheduleRequest struct {
	ClassID      *string `json:"class_id"      binding:"omitempty,uuid"`
	SubjectID    *string `json:"subject_id"    binding:"omitempty,uuid"`
	TeacherID    *string `json:"teacher_id"    binding:"omitempty,uuid"`
	DayOfWeek    *int    `json:"day_of_week"   binding:"omitempty,min=1,max=7"`
	StartTime    *string `json:"start_time"    binding:"omitempty"`
	EndTime      *string `json:"end_time"      binding:"omitempty"`
	Room         *string `json:"room"          binding:"omitempty,max=50"`
	AcademicYear *string `json:"academic_year" binding:"omitempty"`
	Semester     *string `json:"semester"      binding:"omitempty,oneof=odd even"`
}

// SetScheduleActiveRequest toggles a period without conflict re-checking.
type SetScheduleActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ScheduleListRequest filters the period list. Year and semester default to
// the current term when both are empty.
type ScheduleListRequest struct {
	ClassID         string `form:"class_id"         binding:"omitempty,uuid"`
	TeacherID       string `form:"teacher_id"       binding:"omitempty,uuid"`
	DayOfWeek       *int   `form:"day_of_week"      binding:"omitempty,min=1,max=7"`
	AcademicYear    string `form:"academic_year"    binding:"omitempty"`
	Semester        string `form:"semester"         binding:"omitempty,oneof=odd even"`
	IncludeInactive bool   `form:"include_inactive"`
}

// ── responses ──

// ScheduleResponse is the period payload.
type ScheduleResponse struct {
	ID           string        `json:"id"`
	ClassID      string        `json:"class_id"`
	Class        *ClassBrief   `json:"class,omitempty"`
	SubjectID    string        `json:"subject_id"`
	Subject      *SubjectBrief `json:"subject,omitempty"`
	TeacherID    *string       `json:"teacher_id,omitempty"`
	Teacher      *TeacherBrief `json:"teacher,omitempty"`
	DayOfWeek    int           `json:"day_of_week"`
	DayLabel     string        `json:"day_label"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	Room         string        `json:"room,omitempty"`
	AcademicYear string        `json:"academic_year"`
	Semester     string        `json:"semester"`
	IsActive     bool          `json:"is_active"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

// CurrentTermResponse is the resolved academic year and semester.
type CurrentTermResponse struct {
	AcademicYear string `json:"academic_year"`
	Semester     string `json:"semester"`
}
