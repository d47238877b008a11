package models

import "time"

// Application (user_id, job_id) の組は一意（同じ求人に二度応募できない）
type Application struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_applications_user_job"`
	JobID     uint `gorm:"not null;uniqueIndex:idx_applications_user_job"`
	CreatedAt time.Time
}
