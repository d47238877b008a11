package services

import (
	"context"
	"fmt"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/dto"
	"job-board-api/models"
	"job-board-api/repositories"
	"log/slog"
)

type IEmployerService interface {
	FindAll(ctx context.Context) ([]models.Employer, error)
	// FindById 見つからなければ(nil, nil)
	FindById(ctx context.Context, employerID uint) (*models.Employer, error)
	Create(ctx context.Context, input dto.CreateEmployerInput) (*models.Employer, error)
	Update(ctx context.Context, employerID uint, input dto.UpdateEmployerInput) (*models.Employer, error)
	Delete(ctx context.Context, employerID uint) error
}

type EmployerService struct {
	repository repositories.IEmployerRepository
	uow        repositories.IUnitOfWork
	logger     *slog.Logger
}

func NewEmployerService(repository repositories.IEmployerRepository, uow repositories.IUnitOfWork, logger *slog.Logger) IEmployerService {
	return &EmployerService{repository: repository, uow: uow, logger: resolveLogger(logger)}
}

func (s *EmployerService) FindAll(ctx context.Context) ([]models.Employer, error) {
	return s.repository.FindAll(ctx)
}

func (s *EmployerService) FindById(ctx context.Context, employerID uint) (*models.Employer, error) {
	employer, err := s.repository.FindByID(ctx, employerID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return employer, nil
}

func (s *EmployerService) Create(ctx context.Context, input dto.CreateEmployerInput) (*models.Employer, error) {
	var created *models.Employer
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		if err := ensureEmployerEmailFree(ctx, repos, input.ContactEmail, 0); err != nil {
			return err
		}

		var err error
		created, err = repos.Employers.Create(ctx, models.Employer{
			Name:         input.Name,
			ContactEmail: input.ContactEmail,
			Industry:     input.Industry,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "employer created", "employer_id", created.ID)
	return created, nil
}

func (s *EmployerService) Update(ctx context.Context, employerID uint, input dto.UpdateEmployerInput) (*models.Employer, error) {
	// ストレージに触れる前に入力を検証する
	if input.IsEmpty() {
		return nil, apperrors.ErrNoFieldsProvided
	}

	var updated *models.Employer
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		if _, err := repos.Employers.FindByID(ctx, employerID); err != nil {
			return notFoundAs(err, constants.ResourceEmployer)
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Industry != nil {
			updates["industry"] = *input.Industry
		}
		if input.ContactEmail != nil {
			if err := ensureEmployerEmailFree(ctx, repos, *input.ContactEmail, employerID); err != nil {
				return err
			}
			updates["contact_email"] = *input.ContactEmail
		}

		var err error
		updated, err = repos.Employers.Update(ctx, employerID, updates)
		return notFoundAs(err, constants.ResourceEmployer)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *EmployerService) Delete(ctx context.Context, employerID uint) error {
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		if _, err := repos.Employers.FindByID(ctx, employerID); err != nil {
			return notFoundAs(err, constants.ResourceEmployer)
		}
		return notFoundAs(repos.Employers.Delete(ctx, employerID), constants.ResourceEmployer)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "employer deleted", "employer_id", employerID)
	return nil
}

// ensureEmployerEmailFree 連絡先メールアドレスが他の雇用主（selfIDを除く）に使われていないか
func ensureEmployerEmailFree(ctx context.Context, repos repositories.Repositories, email string, selfID uint) error {
	existing, err := repos.Employers.FindByContactEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("find employer by email: %w", err)
	}
	if existing.ID != selfID {
		return apperrors.AlreadyExists(constants.ResourceEmployer)
	}
	return nil
}
