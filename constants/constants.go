package constants

import "time"

// ユーザーロール
const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	// USERテーブルには保存されない。認証情報のないリクエストに明示的なロールを与えるためだけに使う
	RoleUnauthenticated = "unauthenticated"
)

// リソース名（"<Resource> not found." などのメッセージに使う）
const (
	ResourceEmployer = "Employer"
	ResourceJob      = "Job"
	ResourceUser     = "User"
)

// エラーメッセージ
const (
	ErrInvalidAuthorizationHeader = "Invalid authorization header."
	ErrInvalidToken               = "Invalid token."
	ErrExpiredToken               = "Token has expired."
	ErrAuthenticatedUserNotFound  = "Authenticated user not found."
	ErrInsufficientPrivileges     = "Insufficient privileges."
	ErrAlreadyApplied             = "User has already applied to this job."
	ErrNoFieldsProvided           = "At least one field must be provided."
	ErrInvalidRole                = "Invalid role."
	ErrInvalidPassword            = "Invalid password."
	ErrPasswordTooLong            = "Password is too long."
	ErrUnexpected                 = "Unexpected error"
	ErrInvalidInput               = "Invalid input"
)

// トークン・ローダー関連のデフォルト値
const (
	DefaultTokenTTL     = 30 * time.Minute
	DefaultLoaderWait   = 2 * time.Millisecond
	DefaultGraphQLDepth = 5
	BearerPrefix        = "Bearer "
	AuthorizationHeader = "Authorization"

	// 兄弟フィールドのLoadが1つのバッチに収まる並列実行数
	DefaultGraphQLParallelism = 1000
)
