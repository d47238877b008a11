package services

import (
	"context"
	"fmt"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/identity"
	"job-board-api/models"
	"job-board-api/policies"
	"job-board-api/repositories"
	"log/slog"
)

type IApplicationService interface {
	// FindVisible 管理者は全件、一般ユーザーは自分の応募だけ
	FindVisible(ctx context.Context) ([]models.Application, error)
	// Apply 呼び出し元のユーザーとして求人に応募する
	Apply(ctx context.Context, jobID uint) (*models.Application, error)
}

type ApplicationService struct {
	repository repositories.IApplicationRepository
	uow        repositories.IUnitOfWork
	logger     *slog.Logger
}

func NewApplicationService(repository repositories.IApplicationRepository, uow repositories.IUnitOfWork, logger *slog.Logger) IApplicationService {
	return &ApplicationService{repository: repository, uow: uow, logger: resolveLogger(logger)}
}

func (s *ApplicationService) FindVisible(ctx context.Context) ([]models.Application, error) {
	caller := identity.FromContext(ctx)
	switch policies.ApplicationsScope(caller) {
	case policies.ScopeAll:
		return s.repository.FindAll(ctx)
	case policies.ScopeOwn:
		return s.repository.FindByUserID(ctx, caller.ID)
	}
	return []models.Application{}, nil
}

func (s *ApplicationService) Apply(ctx context.Context, jobID uint) (*models.Application, error) {
	caller := identity.FromContext(ctx)
	if caller == nil {
		return nil, apperrors.ErrInsufficientPrivileges
	}

	var created *models.Application
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		if _, err := repos.Jobs.FindByID(ctx, jobID); err != nil {
			return notFoundAs(err, constants.ResourceJob)
		}

		exists, err := repos.Applications.Exists(ctx, caller.ID, jobID)
		if err != nil {
			return fmt.Errorf("check existing application: %w", err)
		}
		if exists {
			return apperrors.ErrAlreadyApplied
		}

		created, err = repos.Applications.Create(ctx, models.Application{UserID: caller.ID, JobID: jobID})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "application created", "user_id", caller.ID, "job_id", jobID)
	return created, nil
}
