//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/omanjaya/websmansa-sub000/internal/model"
	"github.com/omanjaya/websmansa-sub000/internal/repository"
	"github.com/omanjaya/websmansa-sub000/pkg/database"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=websmansa password=websmansa_password dbname=websmansa_test sslmode=disable TimeZone=Asia/Makassar"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connecting to test database failed: %v\n", err)
		os.Exit(1)
	}

	// Run the embedded SQL migrations instead of AutoMigrate so the tests
	// exercise the production schema, including the overlap trigger.
	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getting underlying sql.DB failed: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "running migrations failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestData seeds a class, subject and teacher, returning a cleanup
// function that hard-deletes everything created by the test.
func setupTestData(t *testing.T) (*model.SchoolClass, *model.Subject, *model.Teacher, func()) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	class := &model.SchoolClass{Name: "10A-it", Grade: 10}
	if err := repo.Class.Create(ctx, class); err != nil {
		t.Fatalf("seed class: %v", err)
	}
	subject := &model.Subject{Code: "MTK-it", Name: "Matematika"}
	if err := repo.Subject.Create(ctx, subject); err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	teacher := &model.Teacher{NIP: "19800101-it", Name: "Ibu Sari", SubjectID: &subject.SubjectID}
	if err := repo.Teacher.Create(ctx, teacher); err != nil {
		t.Fatalf("seed teacher: %v", err)
	}

	cleanup := func() {
		testDB.Unscoped().Where("class_id = ?", class.ClassID).Delete(&model.Schedule{})
		testDB.Unscoped().Delete(teacher)
		testDB.Unscoped().Delete(subject)
		testDB.Unscoped().Delete(class)
	}
	return class, subject, teacher, cleanup
}

func newPeriod(class *model.SchoolClass, subject *model.Subject, teacher *model.Teacher, day int, start, end string) *model.Schedule {
	return &model.Schedule{
		ClassID:      class.ClassID,
		SubjectID:    subject.SubjectID,
		TeacherID:    &teacher.TeacherID,
		DayOfWeek:    day,
		StartTime:    start,
		EndTime:      end,
		Room:         "R101",
		AcademicYear: "2024/2025",
		Semester:     model.SemesterOdd,
		IsActive:     true,
	}
}

func TestScheduleRepoRoundTrip(t *testing.T) {
	class, subject, teacher, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	s := newPeriod(class, subject, teacher, 1, "09:00", "10:00")
	if err := repo.Schedule.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ScheduleID == "" {
		t.Fatal("expected a generated id")
	}

	got, err := repo.Schedule.GetByID(ctx, s.ScheduleID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Class == nil || got.Class.Name != "10A-it" {
		t.Errorf("Class preload missing: %+v", got.Class)
	}
	if got.Subject == nil || got.Teacher == nil {
		t.Error("Subject/Teacher preloads missing")
	}
}

func TestScheduleRepoConflictListing(t *testing.T) {
	class, subject, teacher, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	a := newPeriod(class, subject, teacher, 1, "09:00", "10:00")
	if err := repo.Schedule.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.Schedule.ListForConflictCheck(ctx, repository.ConflictQuery{
		ClassID:      class.ClassID,
		AcademicYear: "2024/2025",
		Semester:     model.SemesterOdd,
		DayOfWeek:    1,
	})
	if err != nil {
		t.Fatalf("ListForConflictCheck: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	// ExcludeID drops the row being updated.
	rows, err = repo.Schedule.ListForConflictCheck(ctx, repository.ConflictQuery{
		ClassID:      class.ClassID,
		AcademicYear: "2024/2025",
		Semester:     model.SemesterOdd,
		DayOfWeek:    1,
		ExcludeID:    a.ScheduleID,
	})
	if err != nil {
		t.Fatalf("ListForConflictCheck: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0 with ExcludeID", len(rows))
	}

	// Deactivated rows disappear from the conflict listing.
	if err := repo.Schedule.SetActive(ctx, a.ScheduleID, false, "it-test"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	rows, err = repo.Schedule.ListForConflictCheck(ctx, repository.ConflictQuery{
		ClassID:      class.ClassID,
		AcademicYear: "2024/2025",
		Semester:     model.SemesterOdd,
		DayOfWeek:    1,
	})
	if err != nil {
		t.Fatalf("ListForConflictCheck: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0 after deactivation", len(rows))
	}
}

func TestScheduleRepoOverlapRejectedByStore(t *testing.T) {
	class, subject, teacher, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	a := newPeriod(class, subject, teacher, 1, "09:00", "10:00")
	if err := repo.Schedule.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The trigger catches an overlapping insert even when the advisory
	// conflict check was skipped or raced.
	b := newPeriod(class, subject, teacher, 1, "09:30", "10:30")
	if err := repo.Schedule.Create(ctx, b); err == nil {
		t.Error("overlapping insert must be rejected by the store")
	}

	// Back-to-back is allowed: ranges are half-open.
	c := newPeriod(class, subject, teacher, 1, "10:00", "11:00")
	if err := repo.Schedule.Create(ctx, c); err != nil {
		t.Errorf("back-to-back insert must pass the store check: %v", err)
	}
}

func TestScheduleRepoReactivationIntoOccupiedSlot(t *testing.T) {
	class, subject, teacher, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	a := newPeriod(class, subject, teacher, 3, "09:00", "10:00")
	if err := repo.Schedule.Create(ctx, a); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if err := repo.Schedule.SetActive(ctx, a.ScheduleID, false, "it-test"); err != nil {
		t.Fatalf("SetActive false: %v", err)
	}

	b := newPeriod(class, subject, teacher, 3, "09:00", "10:00")
	if err := repo.Schedule.Create(ctx, b); err != nil {
		t.Fatalf("Create b while a is inactive: %v", err)
	}

	// Reactivating a is never re-checked, even though it now overlaps b.
	if err := repo.Schedule.SetActive(ctx, a.ScheduleID, true, "it-test"); err != nil {
		t.Fatalf("reactivation into an occupied slot must succeed: %v", err)
	}

	got, err := repo.Schedule.GetByID(ctx, a.ScheduleID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsActive {
		t.Error("a must be active again")
	}
}

func TestScheduleRepoSoftDelete(t *testing.T) {
	class, subject, teacher, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	s := newPeriod(class, subject, teacher, 2, "07:00", "08:00")
	if err := repo.Schedule.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Schedule.Delete(ctx, s.ScheduleID, "it-test"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.Schedule.GetByID(ctx, s.ScheduleID); err == nil {
		t.Error("soft-deleted row must be invisible to GetByID")
	}

	// The row still exists physically.
	var count int64
	testDB.Unscoped().Model(&model.Schedule{}).Where("schedule_id = ?", s.ScheduleID).Count(&count)
	if count != 1 {
		t.Errorf("physical rows = %d, want 1", count)
	}
}

func TestActivityLogRepo(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	entry := &model.ActivityLog{
		Action:      "create",
		Description: "integration test entry",
		SubjectType: "it-schedule",
	}
	if err := repo.ActivityLog.Record(ctx, entry); err != nil {
		t.Fatalf("Record: %v", err)
	}
	defer testDB.Unscoped().Delete(entry)

	logs, total, err := repo.ActivityLog.List(ctx, "it-schedule", 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total < 1 || len(logs) < 1 {
		t.Errorf("total = %d, len = %d, want at least 1", total, len(logs))
	}
}
