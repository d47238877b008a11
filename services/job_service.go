package services

import (
	"context"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/dto"
	"job-board-api/models"
	"job-board-api/repositories"
	"log/slog"
)

type IJobService interface {
	FindAll(ctx context.Context) ([]models.Job, error)
	// FindById 見つからなければ(nil, nil)
	FindById(ctx context.Context, jobID uint) (*models.Job, error)
	Create(ctx context.Context, input dto.CreateJobInput) (*models.Job, error)
	Update(ctx context.Context, jobID uint, input dto.UpdateJobInput) (*models.Job, error)
	Delete(ctx context.Context, jobID uint) error
}

type JobService struct {
	repository repositories.IJobRepository
	uow        repositories.IUnitOfWork
	logger     *slog.Logger
}

func NewJobService(repository repositories.IJobRepository, uow repositories.IUnitOfWork, logger *slog.Logger) IJobService {
	return &JobService{repository: repository, uow: uow, logger: resolveLogger(logger)}
}

func (s *JobService) FindAll(ctx context.Context) ([]models.Job, error) {
	return s.repository.FindAll(ctx)
}

func (s *JobService) FindById(ctx context.Context, jobID uint) (*models.Job, error) {
	job, err := s.repository.FindByID(ctx, jobID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) Create(ctx context.Context, input dto.CreateJobInput) (*models.Job, error) {
	var created *models.Job
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		// 外部キー違反ではなく "Employer not found." を返すために事前に確認する
		if _, err := repos.Employers.FindByID(ctx, input.EmployerID); err != nil {
			return notFoundAs(err, constants.ResourceEmployer)
		}

		var err error
		created, err = repos.Jobs.Create(ctx, models.Job{
			Title:       input.Title,
			Description: input.Description,
			EmployerID:  input.EmployerID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "job created", "job_id", created.ID, "employer_id", created.EmployerID)
	return created, nil
}

func (s *JobService) Update(ctx context.Context, jobID uint, input dto.UpdateJobInput) (*models.Job, error) {
	if input.IsEmpty() {
		return nil, apperrors.ErrNoFieldsProvided
	}

	var updated *models.Job
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		if _, err := repos.Jobs.FindByID(ctx, jobID); err != nil {
			return notFoundAs(err, constants.ResourceJob)
		}

		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.EmployerID != nil {
			if _, err := repos.Employers.FindByID(ctx, *input.EmployerID); err != nil {
				return notFoundAs(err, constants.ResourceEmployer)
			}
			updates["employer_id"] = *input.EmployerID
		}

		var err error
		updated, err = repos.Jobs.Update(ctx, jobID, updates)
		return notFoundAs(err, constants.ResourceJob)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *JobService) Delete(ctx context.Context, jobID uint) error {
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		if _, err := repos.Jobs.FindByID(ctx, jobID); err != nil {
			return notFoundAs(err, constants.ResourceJob)
		}
		return notFoundAs(repos.Jobs.Delete(ctx, jobID), constants.ResourceJob)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "job deleted", "job_id", jobID)
	return nil
}
