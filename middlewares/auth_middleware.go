package middlewares

import (
	"context"
	"job-board-api/constants"
	"job-board-api/identity"
	"job-board-api/loaders"
	"job-board-api/repositories"
	"job-board-api/services"
	"sync"

	"github.com/gin-gonic/gin"
)

// credentials リクエストのAuthorizationヘッダーと、呼び出し元の解決結果（1回だけ解決する）
type credentials struct {
	header string
	auth   services.IAuthService

	once   sync.Once
	caller *identity.Caller
	err    error
}

type credentialsKey struct{}

// WithCredentials ヘッダーと解決に使う認証サービスをcontextに載せる。解決は最初の参照時に行う
func WithCredentials(ctx context.Context, authorizationHeader string, auth services.IAuthService) context.Context {
	return context.WithValue(ctx, credentialsKey{}, &credentials{header: authorizationHeader, auth: auth})
}

// AuthorizationHeader リクエストに提示されたAuthorizationヘッダー
func AuthorizationHeader(ctx context.Context) string {
	if c, ok := ctx.Value(credentialsKey{}).(*credentials); ok {
		return c.header
	}
	return ""
}

// resolveCaller ヘッダーがなければ(nil, nil)
func resolveCaller(ctx context.Context) (*identity.Caller, error) {
	c, ok := ctx.Value(credentialsKey{}).(*credentials)
	if !ok {
		return nil, nil
	}
	c.once.Do(func() {
		c.caller, c.err = c.auth.ResolveCaller(ctx, c.header)
	})
	return c.caller, c.err
}

// RequestScope リクエストごとに認証情報とバッチローダーをcontextに用意する。
// ここではアクセスを拒否しない。拒否の判断は各オペレーションのGateが行う
func RequestScope(authService services.IAuthService, repos repositories.Repositories, opts ...loaders.Option) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader(constants.AuthorizationHeader)

		reqCtx := WithCredentials(ctx.Request.Context(), header, authService)
		reqCtx = loaders.WithLoaders(reqCtx, loaders.NewLoaders(repos, opts...))
		ctx.Request = ctx.Request.WithContext(reqCtx)

		ctx.Next()
	}
}
