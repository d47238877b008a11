// Package identity はリクエスト単位の呼び出し元を表す。永続化はされない
package identity

import (
	"context"
	"job-board-api/constants"
)

// Caller トークンから解決された呼び出し元
type Caller struct {
	ID    uint
	Email string
	Role  string // "user" | "admin"
}

type callerKey struct{}

// WithCaller 呼び出し元をcontextに束縛する
func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// FromContext 束縛された呼び出し元を返す。未認証ならnil
func FromContext(ctx context.Context) *Caller {
	c, _ := ctx.Value(callerKey{}).(*Caller)
	return c
}

// RoleOf nilの呼び出し元は "unauthenticated" として扱う
func RoleOf(c *Caller) string {
	if c == nil {
		return constants.RoleUnauthenticated
	}
	return c.Role
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == constants.RoleAdmin
}
