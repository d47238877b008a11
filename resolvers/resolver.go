// Package resolvers はGraphQLのスキーマとリゾルバーを提供する。
//
// ルートのクエリとミューテーションはすべてmiddlewares.Guardを通る。
// ネストしたフィールドはルートで認可された呼び出し元を引き継いで可視範囲を決め、
// 関連行はリクエスト単位のローダーから読む。
package resolvers

import (
	"context"
	_ "embed"
	"job-board-api/constants"
	"job-board-api/loaders"
	"job-board-api/middlewares"
	"job-board-api/services"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var Schema string

// オペレーションごとに許可するロール
var (
	anyone        = middlewares.Roles(constants.RoleUnauthenticated, constants.RoleUser, constants.RoleAdmin)
	signedIn      = middlewares.Roles(constants.RoleUser, constants.RoleAdmin)
	adminOnly     = middlewares.Roles(constants.RoleAdmin)
	userOnly      = middlewares.Roles(constants.RoleUser)
	anonymousOnly = middlewares.Roles(constants.RoleUnauthenticated)
	signUp        = middlewares.Roles(constants.RoleUnauthenticated, constants.RoleAdmin)
)

type Resolver struct {
	employers    services.IEmployerService
	jobs         services.IJobService
	users        services.IUserService
	applications services.IApplicationService
	auth         services.IAuthService
	gate         *middlewares.Gate
}

type Services struct {
	Employers    services.IEmployerService
	Jobs         services.IJobService
	Users        services.IUserService
	Applications services.IApplicationService
	Auth         services.IAuthService
}

func NewResolver(s Services, gate *middlewares.Gate) *Resolver {
	if gate == nil {
		gate = middlewares.NewGate(nil)
	}
	return &Resolver{
		employers:    s.Employers,
		jobs:         s.Jobs,
		users:        s.Users,
		applications: s.Applications,
		auth:         s.Auth,
		gate:         gate,
	}
}

// NewSchema スキーマを解析してリゾルバーと結びつける。0以下の値は既定値になる。
// 並列数が小さいと兄弟フィールドのLoadが複数のバッチに分かれてしまう
func NewSchema(r *Resolver, maxDepth int, maxParallelism int) (*graphql.Schema, error) {
	if maxDepth <= 0 {
		maxDepth = constants.DefaultGraphQLDepth
	}
	if maxParallelism <= 0 {
		maxParallelism = constants.DefaultGraphQLParallelism
	}
	return graphql.ParseSchema(Schema, r,
		graphql.MaxDepth(maxDepth),
		graphql.MaxParallelism(maxParallelism),
	)
}

// invalidateLoaders 書き込みの後、同じリクエストの以降の読み込みは最新の行を見る
func invalidateLoaders(ctx context.Context) {
	if l, err := loaders.For(ctx); err == nil {
		l.ClearAll()
	}
}
