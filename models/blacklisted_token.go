package models

import "time"

// BlacklistedToken ログアウト済みトークン。ExpiresAtを過ぎたものは掃除してよい
type BlacklistedToken struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null;unique;index"`
	ExpiresAt int64  `gorm:"not null;index"`
	CreatedAt time.Time
}
