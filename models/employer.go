package models

import "time"

type Employer struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:40;not null"`
	ContactEmail string `gorm:"size:254;not null;unique"`
	Industry     string `gorm:"size:254;not null"`
	Jobs         []Job  `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
