package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/service"
	pkgerrors "github.com/omanjaya/websmansa-sub000/pkg/errors"
	"github.com/omanjaya/websmansa-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock Services ──

type mockScheduleService struct {
	createResult *dto.ScheduleResponse
	createErr    error
	getResult    *dto.ScheduleResponse
	getErr       error
	listResult   []dto.ScheduleResponse
	listErr      error
	updateResult *dto.ScheduleResponse
	updateErr    error
	activeResult *dto.ScheduleResponse
	activeErr    error
	deleteErr    error
	term         dto.CurrentTermResponse
}

func (m *mockScheduleService) Create(_ context.Context, _ *dto.CreateScheduleRequest, _ string) (*dto.ScheduleResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockScheduleService) GetByID(_ context.Context, _ string) (*dto.ScheduleResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockScheduleService) List(_ context.Context, _ *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockScheduleService) Update(_ context.Context, _ string, _ *dto.UpdateScheduleRequest, _ string) (*dto.ScheduleResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockScheduleService) SetActive(_ context.Context, _ string, _ bool, _ string) (*dto.ScheduleResponse, error) {
	return m.activeResult, m.activeErr
}
func (m *mockScheduleService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockScheduleService) CurrentTerm() dto.CurrentTermResponse {
	return m.term
}

type mockTimetableService struct {
	result *dto.TimetableResponse
	err    error
}

func (m *mockTimetableService) ByClass(_ context.Context, _ string, _ *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	return m.result, m.err
}
func (m *mockTimetableService) ByTeacher(_ context.Context, _ string, _ *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	return m.result, m.err
}

type authServiceStub struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
}

func (m *authServiceStub) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *authServiceStub) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *authServiceStub) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *authServiceStub) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

// ── helpers ──

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func withCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", "admin")
		c.Next()
	}
}

func validCreateBody() dto.CreateScheduleRequest {
	return dto.CreateScheduleRequest{
		ClassID:      "4b2f3a1e-0000-0000-0000-000000000001",
		SubjectID:    "4b2f3a1e-0000-0000-0000-000000000002",
		DayOfWeek:    1,
		StartTime:    "09:00",
		EndTime:      "10:00",
		AcademicYear: "2024/2025",
		Semester:     "odd",
	}
}

// ── ScheduleHandler ──

func TestScheduleHandler_Create_Success(t *testing.T) {
	mock := &mockScheduleService{
		createResult: &dto.ScheduleResponse{ID: "s-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules", jsonBody(validCreateBody()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", withCaller(), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestScheduleHandler_Create_Conflict(t *testing.T) {
	mock := &mockScheduleService{
		createErr: &pkgerrors.ConflictError{ConflictingIDs: []string{"s-9", "s-10"}},
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules", jsonBody(validCreateBody()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", withCaller(), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var resp struct {
		Code    int `json:"code"`
		Details struct {
			ConflictingIDs []string `json:"conflicting_ids"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Details.ConflictingIDs) != 2 || resp.Details.ConflictingIDs[0] != "s-9" {
		t.Errorf("conflicting_ids = %v", resp.Details.ConflictingIDs)
	}
}

func TestScheduleHandler_Create_ValidationError(t *testing.T) {
	mock := &mockScheduleService{
		createErr: pkgerrors.NewValidation("end_time", "must be after start_time"),
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules", jsonBody(validCreateBody()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", withCaller(), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_Create_BadJSON(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", withCaller(), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_Get_NotFound(t *testing.T) {
	mock := &mockScheduleService{getErr: pkgerrors.NewNotFound("schedule", "ghost")}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/schedules/ghost", nil)

	r := gin.New()
	r.GET("/schedules/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestScheduleHandler_SetActive_RequiresBody(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/schedules/s-1/active", jsonBody(gin.H{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PATCH("/schedules/:id/active", withCaller(), h.SetActive)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing is_active, got %d", w.Code)
	}
}

func TestScheduleHandler_CurrentTerm(t *testing.T) {
	mock := &mockScheduleService{term: dto.CurrentTermResponse{AcademicYear: "2024/2025", Semester: "odd"}}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/terms/current", nil)

	r := gin.New()
	r.GET("/terms/current", h.CurrentTerm)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data dto.CurrentTermResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.AcademicYear != "2024/2025" || resp.Data.Semester != "odd" {
		t.Errorf("data = %+v", resp.Data)
	}
}

// ── TimetableHandler ──

func TestTimetableHandler_ByClass(t *testing.T) {
	days := make([]dto.TimetableDay, 7)
	for i := range days {
		days[i] = dto.TimetableDay{DayOfWeek: i + 1, Periods: []dto.ScheduleResponse{}}
	}
	mock := &mockTimetableService{result: &dto.TimetableResponse{AcademicYear: "2024/2025", Semester: "odd", Days: days}}
	h := NewTimetableHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/timetables/class/c-1", nil)

	r := gin.New()
	r.GET("/timetables/class/:id", h.ByClass)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data dto.TimetableResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data.Days) != 7 {
		t.Errorf("len(Days) = %d, want 7", len(resp.Data.Days))
	}
}

func TestTimetableHandler_ByClass_NotFound(t *testing.T) {
	mock := &mockTimetableService{err: pkgerrors.NewNotFound("class", "ghost")}
	h := NewTimetableHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/timetables/class/ghost", nil)

	r := gin.New()
	r.GET("/timetables/class/:id", h.ByClass)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ── AuthHandler ──

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &authServiceStub{
		loginResult: &dto.TokenResponse{AccessToken: "acc", RefreshToken: "ref", ExpiresIn: 900},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{Username: "admin", Password: "pass1234"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &authServiceStub{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{Username: "admin", Password: "wrong123"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected code 11001, got %d", resp.Code)
	}
}
