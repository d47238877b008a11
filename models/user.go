package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:30;not null"`
	Email    string `gorm:"size:254;not null;unique"`
	// ソルト付きハッシュのみ保存する（平文は保持しない）
	PasswordHash string        `gorm:"column:password_hash;size:128;not null" json:"-"`
	Role         string        `gorm:"size:20;not null;default:'user'"`
	Applications []Application `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
