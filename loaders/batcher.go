package loaders

import (
	"context"
	"job-board-api/models"
	"job-board-api/repositories"
	"log/slog"

	"github.com/graph-gophers/dataloader/v7"
)

// batcher リレーションごとのバッチ関数。どれもキー集合に対して1回だけクエリを発行する
type batcher struct {
	repos  repositories.Repositories
	logger *slog.Logger
}

func (b batcher) logBatch(ctx context.Context, relation string, keys int, err error) {
	if err != nil {
		b.logger.ErrorContext(ctx, "batch load failed", "relation", relation, "keys", keys, "error", err)
		return
	}
	b.logger.DebugContext(ctx, "batch load", "relation", relation, "keys", keys)
}

func (b batcher) employersByID(ctx context.Context, ids []uint) []*dataloader.Result[*models.Employer] {
	rows, err := b.repos.Employers.FindByIDs(ctx, ids)
	b.logBatch(ctx, "employer_by_id", len(ids), err)
	if err != nil {
		return failAll[uint, *models.Employer](ids, err)
	}
	return oneByKey(ids, rows, func(e models.Employer) uint { return e.ID })
}

func (b batcher) jobsByID(ctx context.Context, ids []uint) []*dataloader.Result[*models.Job] {
	rows, err := b.repos.Jobs.FindByIDs(ctx, ids)
	b.logBatch(ctx, "job_by_id", len(ids), err)
	if err != nil {
		return failAll[uint, *models.Job](ids, err)
	}
	return oneByKey(ids, rows, func(j models.Job) uint { return j.ID })
}

func (b batcher) jobsByEmployerID(ctx context.Context, employerIDs []uint) []*dataloader.Result[[]models.Job] {
	rows, err := b.repos.Jobs.FindByEmployerIDs(ctx, employerIDs)
	b.logBatch(ctx, "jobs_by_employer_id", len(employerIDs), err)
	if err != nil {
		return failAll[uint, []models.Job](employerIDs, err)
	}
	return manyByKey(employerIDs, rows, func(j models.Job) uint { return j.EmployerID })
}

func (b batcher) usersByID(ctx context.Context, ids []uint) []*dataloader.Result[*models.User] {
	rows, err := b.repos.Users.FindByIDs(ctx, ids)
	b.logBatch(ctx, "user_by_id", len(ids), err)
	if err != nil {
		return failAll[uint, *models.User](ids, err)
	}
	return oneByKey(ids, rows, func(u models.User) uint { return u.ID })
}

func (b batcher) applicationsByJobID(ctx context.Context, jobIDs []uint) []*dataloader.Result[[]models.Application] {
	rows, err := b.repos.Applications.FindByJobIDs(ctx, jobIDs)
	b.logBatch(ctx, "applications_by_job_id", len(jobIDs), err)
	if err != nil {
		return failAll[uint, []models.Application](jobIDs, err)
	}
	return manyByKey(jobIDs, rows, func(a models.Application) uint { return a.JobID })
}

func (b batcher) applicationsByJobUser(ctx context.Context, pairs []repositories.JobUserPair) []*dataloader.Result[[]models.Application] {
	rows, err := b.repos.Applications.FindByJobUserPairs(ctx, pairs)
	b.logBatch(ctx, "applications_by_job_user", len(pairs), err)
	if err != nil {
		return failAll[repositories.JobUserPair, []models.Application](pairs, err)
	}
	return manyByKey(pairs, rows, func(a models.Application) repositories.JobUserPair {
		return repositories.JobUserPair{JobID: a.JobID, UserID: a.UserID}
	})
}

func (b batcher) applicationsByUserID(ctx context.Context, userIDs []uint) []*dataloader.Result[[]models.Application] {
	rows, err := b.repos.Applications.FindByUserIDs(ctx, userIDs)
	b.logBatch(ctx, "applications_by_user_id", len(userIDs), err)
	if err != nil {
		return failAll[uint, []models.Application](userIDs, err)
	}
	return manyByKey(userIDs, rows, func(a models.Application) uint { return a.UserID })
}
