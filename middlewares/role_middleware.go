package middlewares

import (
	"context"
	"errors"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/identity"
	"log/slog"
	"sort"
	"strings"
)

// RoleSet オペレーションの呼び出しを許可するロールの集合
type RoleSet map[string]struct{}

func Roles(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[strings.TrimSpace(strings.ToLower(role))] = struct{}{}
	}
	return set
}

func (s RoleSet) Allows(role string) bool {
	_, ok := s[strings.TrimSpace(strings.ToLower(role))]
	return ok
}

func (s RoleSet) String() string {
	roles := make([]string, 0, len(s))
	for role := range s {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return "{" + strings.Join(roles, ",") + "}"
}

// Gate 全てのクエリとミューテーションが通る唯一の認可チェックポイント
type Gate struct {
	logger *slog.Logger
}

func NewGate(logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{logger: logger}
}

// Authorize 呼び出し元を解決し、許可されたロールかを確認する。
// 成功すると呼び出し元をcontextに載せて返す（未認証ならnil）
func (g *Gate) Authorize(ctx context.Context, allowed RoleSet) (context.Context, error) {
	caller, err := resolveCaller(ctx)
	if err != nil {
		// 未認証が許可されている場合のみ、資格情報のエラーを無視して未認証として扱う
		if !apperrors.IsCredential(err) || !allowed.Allows(constants.RoleUnauthenticated) {
			g.logger.InfoContext(ctx, "role gate rejected", "allowed", allowed.String(), "kind", apperrors.KindOf(err).String(), "error", err)
			return ctx, err
		}
		g.logger.DebugContext(ctx, "role gate bypass as unauthenticated", "allowed", allowed.String(), "error", err)
		return identity.WithCaller(ctx, nil), nil
	}

	// 重要: ロールはデータベースのUSERテーブルのroleカラムから取得したもの
	role := identity.RoleOf(caller)
	if !allowed.Allows(role) {
		g.logger.InfoContext(ctx, "role gate denied", "role", role, "allowed", allowed.String())
		return ctx, apperrors.ErrInsufficientPrivileges
	}

	return identity.WithCaller(ctx, caller), nil
}

// Mask 業務エラーはそのまま返し、内部エラーはログに残して汎用メッセージに置き換える
func (g *Gate) Mask(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	g.logger.ErrorContext(ctx, "unexpected error", "error", err)
	return errors.New(constants.ErrUnexpected)
}

// Guard 許可されたロールの呼び出し元に対してのみfnを実行する
func Guard[T any](ctx context.Context, g *Gate, allowed RoleSet, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	authorizedCtx, err := g.Authorize(ctx, allowed)
	if err != nil {
		return zero, g.Mask(ctx, err)
	}

	result, err := fn(authorizedCtx)
	if err != nil {
		return zero, g.Mask(authorizedCtx, err)
	}
	return result, nil
}
