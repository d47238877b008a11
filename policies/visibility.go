// Package policies はロールごとの行の可視範囲を決める。
//
// 求人(Job)の一覧はどのロールにも全件見えるが、求人にぶら下がる応募の一覧は
// ロールによって変わる。そのためこの判定はルートのクエリだけでなく
// リレーションの解決時にも使われる。
package policies

import (
	"job-board-api/constants"
	"job-board-api/identity"
)

type Scope int

const (
	// ScopeNone 何も見えない
	ScopeNone Scope = iota
	// ScopeOwn 呼び出し元自身の行だけ
	ScopeOwn
	// ScopeAll 全件
	ScopeAll
)

func (s Scope) String() string {
	switch s {
	case ScopeOwn:
		return "own"
	case ScopeAll:
		return "all"
	}
	return "none"
}

func scopeByRole(c *identity.Caller) Scope {
	switch identity.RoleOf(c) {
	case constants.RoleAdmin:
		return ScopeAll
	case constants.RoleUser:
		return ScopeOwn
	}
	return ScopeNone
}

// ApplicationsScope 応募（トップレベル一覧・求人ごとの一覧の両方）
func ApplicationsScope(c *identity.Caller) Scope {
	return scopeByRole(c)
}

// UsersScope ユーザー一覧
func UsersScope(c *identity.Caller) Scope {
	return scopeByRole(c)
}

// CanSeeUserApplications あるユーザーの応募一覧は本人か管理者だけが見られる
func CanSeeUserApplications(c *identity.Caller, userID uint) bool {
	switch scopeByRole(c) {
	case ScopeAll:
		return true
	case ScopeOwn:
		return c.ID == userID
	}
	return false
}
