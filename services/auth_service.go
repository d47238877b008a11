package services

import (
	"context"
	"errors"
	"fmt"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/dto"
	"job-board-api/identity"
	"job-board-api/repositories"
	"strings"
	"time"

	"gorm.io/gorm"
)

type IAuthService interface {
	// ResolveCaller Authorizationヘッダーから呼び出し元を解決する。ヘッダーが空なら(nil, nil)
	ResolveCaller(ctx context.Context, authorizationHeader string) (*identity.Caller, error)
	Login(ctx context.Context, input dto.LoginInput) (string, error)
	Logout(ctx context.Context, authorizationHeader string) error
}

type AuthService struct {
	repository      repositories.IUserRepository
	tokenRepository repositories.ITokenRepository
	tokens          ITokenService
	hasher          IPasswordHasher
}

// NewAuthService tokenRepositoryがnilの場合はブラックリストを確認しない
func NewAuthService(repository repositories.IUserRepository, tokenRepository repositories.ITokenRepository, tokens ITokenService, hasher IPasswordHasher) IAuthService {
	return &AuthService{
		repository:      repository,
		tokenRepository: tokenRepository,
		tokens:          tokens,
		hasher:          hasher,
	}
}

// ExtractBearerToken "Bearer <token>" 形式でなければErrInvalidHeader
func ExtractBearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		return "", apperrors.ErrInvalidHeader
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
	if tokenString == "" {
		return "", apperrors.ErrInvalidHeader
	}
	return tokenString, nil
}

func (s *AuthService) ResolveCaller(ctx context.Context, authorizationHeader string) (*identity.Caller, error) {
	if authorizationHeader == "" {
		return nil, nil
	}

	claims, _, err := s.verifyHeader(ctx, authorizationHeader)
	if err != nil {
		return nil, err
	}

	// 重要: ロールはトークンではなくデータベースのUSERテーブルから取得する
	user, err := s.repository.FindUser(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthenticatedUserNotFound
		}
		return nil, fmt.Errorf("find authenticated user: %w", err)
	}

	return &identity.Caller{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *AuthService) verifyHeader(ctx context.Context, authorizationHeader string) (*TokenClaims, string, error) {
	tokenString, err := ExtractBearerToken(authorizationHeader)
	if err != nil {
		return nil, "", err
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, "", err
	}

	// トークンがブラックリストに含まれているかチェック
	if s.tokenRepository != nil {
		isBlacklisted, err := s.tokenRepository.IsTokenBlacklisted(ctx, tokenString)
		if err != nil {
			return nil, "", fmt.Errorf("check token blacklist: %w", err)
		}
		if isBlacklisted {
			return nil, "", apperrors.ErrInvalidToken
		}
	}
	return claims, tokenString, nil
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (string, error) {
	foundUser, err := s.repository.FindUser(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound(constants.ResourceUser)
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Verify(foundUser.PasswordHash, input.Password); err != nil {
		return "", err
	}

	return s.tokens.Sign(foundUser.Email)
}

// Logout 提示されたトークンを有効期限付きでブラックリストに追加する
func (s *AuthService) Logout(ctx context.Context, authorizationHeader string) error {
	if s.tokenRepository == nil {
		return errors.New("token blacklist is not configured")
	}

	claims, tokenString, err := s.verifyHeader(ctx, authorizationHeader)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(time.Hour).Unix()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Unix()
	}
	return s.tokenRepository.AddBlacklistedToken(ctx, tokenString, expiresAt)
}
