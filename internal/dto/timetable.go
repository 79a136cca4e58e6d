package dto

// TimetableRequest selects the term for a grouped timetable view. Both
// fields empty means "the current term".
type TimetableRequest struct {
	AcademicYear string `form:"academic_year" binding:"omitempty"`
	Semester     string `form:"semester"      binding:"omitempty,oneof=odd even"`
}

// TimetableDay is one weekday column of the timetable: always present, even
// with no periods, so clients can render a fixed Monday→Sunday grid.
type TimetableDay struct {
	DayOfWeek int                `json:"day_of_week"`
	Label     string             `json:"label"`
	Periods   []ScheduleResponse `json:"periods"`
}

// TimetableResponse is the grouped weekly view for a class or a teacher.
type TimetableResponse struct {
	AcademicYear string         `json:"academic_year"`
	Semester     string         `json:"semester"`
	Days         []TimetableDay `json:"days"`
}
