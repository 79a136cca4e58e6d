package dto

// ── school classes ──

type CreateClassRequest struct {
	Name  string `json:"name"  binding:"required,max=50"`
	Grade int    `json:"grade" binding:"required,min=1,max=13"`
}

type UpdateClassRequest struct {
	Name  *string `json:"name"  binding:"omitempty,max=50"`
	Grade *int    `json:"grade" binding:"omitempty,min=1,max=13"`
}

type ClassResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Grade     int    `json:"grade"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ClassBrief is the embedded summary used inside schedule payloads.
type ClassBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── subjects ──

type CreateSubjectRequest struct {
	Code string `json:"code" binding:"required,max=20"`
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateSubjectRequest struct {
	Code *string `json:"code" binding:"omitempty,max=20"`
	Name *string `json:"name" binding:"omitempty,max=100"`
}

type SubjectResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SubjectBrief struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// ── teachers ──

type CreateTeacherRequest struct {
	NIP       string  `json:"nip"        binding:"required,max=30"`
	Name      string  `json:"name"       binding:"required,max=100"`
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
}

type UpdateTeacherRequest struct {
	NIP       *string `json:"nip"        binding:"omitempty,max=30"`
	Name      *string `json:"name"       binding:"omitempty,max=100"`
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
}

type TeacherResponse struct {
	ID        string        `json:"id"`
	NIP       string        `json:"nip"`
	Name      string        `json:"name"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

type TeacherBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── activity logs ──

type ActivityLogListRequest struct {
	SubjectType string `form:"subject_type" binding:"omitempty,max=50"`
	PaginationRequest
}

type ActivityLogResponse struct {
	ID          string  `json:"id"`
	Action      string  `json:"action"`
	Description string  `json:"description"`
	SubjectType string  `json:"subject_type"`
	SubjectID   *string `json:"subject_id,omitempty"`
	ActorID     *string `json:"actor_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
