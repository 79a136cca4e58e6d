package model

import "time"

// ActivityLog is one audit entry recorded after a successful mutation.
// Maps to activity_logs. Recording is best-effort: a failed log write never
// fails the operation that produced it.
type ActivityLog struct {
	LogID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	Action      string    `gorm:"type:varchar(30);not null"                      json:"action"` // create | update | delete | activate | deactivate
	Description string    `gorm:"type:varchar(500);not null"                     json:"description"`
	SubjectType string    `gorm:"type:varchar(50);not null"                      json:"subject_type"`
	SubjectID   *string   `gorm:"type:uuid"                                      json:"subject_id,omitempty"`
	ActorID     *string   `gorm:"type:uuid"                                      json:"actor_id,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
