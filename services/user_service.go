package services

import (
	"context"
	"fmt"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/dto"
	"job-board-api/identity"
	"job-board-api/models"
	"job-board-api/policies"
	"job-board-api/repositories"
	"log/slog"
)

type IUserService interface {
	// FindVisible 管理者は全件、一般ユーザーは自分の行だけ
	FindVisible(ctx context.Context) ([]models.User, error)
	AddUser(ctx context.Context, input dto.AddUserInput) (*models.User, error)
	Delete(ctx context.Context, userID uint) error
}

type UserService struct {
	repository repositories.IUserRepository
	uow        repositories.IUnitOfWork
	hasher     IPasswordHasher
	logger     *slog.Logger
}

func NewUserService(repository repositories.IUserRepository, uow repositories.IUnitOfWork, hasher IPasswordHasher, logger *slog.Logger) IUserService {
	return &UserService{repository: repository, uow: uow, hasher: hasher, logger: resolveLogger(logger)}
}

func (s *UserService) FindVisible(ctx context.Context) ([]models.User, error) {
	caller := identity.FromContext(ctx)
	switch policies.UsersScope(caller) {
	case policies.ScopeAll:
		return s.repository.FindAll(ctx)
	case policies.ScopeOwn:
		user, err := s.repository.FindByID(ctx, caller.ID)
		if err != nil {
			if isNotFound(err) {
				return []models.User{}, nil
			}
			return nil, err
		}
		return []models.User{*user}, nil
	}
	return []models.User{}, nil
}

func (s *UserService) AddUser(ctx context.Context, input dto.AddUserInput) (*models.User, error) {
	if input.Role != constants.RoleUser && input.Role != constants.RoleAdmin {
		return nil, apperrors.ErrInvalidRole
	}

	// 管理者を追加できるのは管理者だけ（ロールゲートとは別の業務ルール）
	if input.Role == constants.RoleAdmin && !identity.FromContext(ctx).IsAdmin() {
		return nil, apperrors.ErrInsufficientPrivileges
	}

	// ハッシュ化の前に重複を確認する
	if err := ensureUserEmailFree(ctx, s.repository, input.Email); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *models.User
	err = s.uow.Do(ctx, func(repos repositories.Repositories) error {
		if err := ensureUserEmailFree(ctx, repos.Users, input.Email); err != nil {
			return err
		}

		var err error
		created, err = repos.Users.CreateUser(ctx, models.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: passwordHash,
			Role:         input.Role,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

func (s *UserService) Delete(ctx context.Context, userID uint) error {
	return s.uow.Do(ctx, func(repos repositories.Repositories) error {
		if _, err := repos.Users.FindByID(ctx, userID); err != nil {
			return notFoundAs(err, constants.ResourceUser)
		}
		return notFoundAs(repos.Users.Delete(ctx, userID), constants.ResourceUser)
	})
}

func ensureUserEmailFree(ctx context.Context, users repositories.IUserRepository, email string) error {
	_, err := users.FindUser(ctx, email)
	if err == nil {
		return apperrors.AlreadyExists(constants.ResourceUser)
	}
	if !isNotFound(err) {
		return fmt.Errorf("find user by email: %w", err)
	}
	return nil
}
