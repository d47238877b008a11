package models

import "time"

type Job struct {
	ID           uint          `gorm:"primaryKey"`
	Title        string        `gorm:"size:150;not null"`
	Description  string        `gorm:"size:1000;not null"`
	EmployerID   uint          `gorm:"not null;index"`
	Applications []Application `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
