// Package loaders はリクエスト単位のバッチローダーを提供する。
//
// 1回のレスポンスツリーの解決中に発行された「キーで関連行を読む」要求を
// 待ち時間の窓の中で集め、リレーションの種類ごとに1回のクエリにまとめる。
// 結果は呼び出し元のロールに依存するため、Loadersはリクエストごとに作り直し、
// 決してリクエスト間で共有しない。
package loaders

import (
	"context"
	"fmt"
	"job-board-api/constants"
	"job-board-api/models"
	"job-board-api/repositories"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"
)

type Loaders struct {
	EmployerByID     *dataloader.Loader[uint, *models.Employer]
	JobByID          *dataloader.Loader[uint, *models.Job]
	JobsByEmployerID *dataloader.Loader[uint, []models.Job]
	UserByID         *dataloader.Loader[uint, *models.User]

	// 管理者向け: 求人の全応募
	ApplicationsByJobID *dataloader.Loader[uint, []models.Application]
	// 一般ユーザー向け: (job_id, user_id) で絞った応募。管理者向けとはキャッシュを共有しない
	ApplicationsByJobUser *dataloader.Loader[repositories.JobUserPair, []models.Application]
	ApplicationsByUserID  *dataloader.Loader[uint, []models.Application]
}

type config struct {
	wait   time.Duration
	logger *slog.Logger
}

type Option func(*config)

// WithWait バッチを集める待ち時間
func WithWait(d time.Duration) Option {
	return func(c *config) {
		c.wait = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewLoaders リクエストの開始時に呼び出す
func NewLoaders(repos repositories.Repositories, opts ...Option) *Loaders {
	cfg := config{wait: constants.DefaultLoaderWait, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	b := batcher{repos: repos, logger: cfg.logger}

	return &Loaders{
		EmployerByID:          newLoader(b.employersByID, cfg),
		JobByID:               newLoader(b.jobsByID, cfg),
		JobsByEmployerID:      newLoader(b.jobsByEmployerID, cfg),
		UserByID:              newLoader(b.usersByID, cfg),
		ApplicationsByJobID:   newLoader(b.applicationsByJobID, cfg),
		ApplicationsByJobUser: newLoader(b.applicationsByJobUser, cfg),
		ApplicationsByUserID:  newLoader(b.applicationsByUserID, cfg),
	}
}

func newLoader[K comparable, V any](fn dataloader.BatchFunc[K, V], cfg config) *dataloader.Loader[K, V] {
	// 既定のインメモリキャッシュでリクエスト内の重複キーを1件にまとめる
	return dataloader.NewBatchedLoader(fn, dataloader.WithWait[K, V](cfg.wait))
}

type loadersKey struct{}

func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, l)
}

// For contextからリクエストのLoadersを取り出す
func For(ctx context.Context) (*Loaders, error) {
	l, ok := ctx.Value(loadersKey{}).(*Loaders)
	if !ok || l == nil {
		return nil, fmt.Errorf("loaders not found in request context")
	}
	return l, nil
}

func (l *Loaders) Employer(ctx context.Context, employerID uint) (*models.Employer, error) {
	return l.EmployerByID.Load(ctx, employerID)()
}

func (l *Loaders) Job(ctx context.Context, jobID uint) (*models.Job, error) {
	return l.JobByID.Load(ctx, jobID)()
}

func (l *Loaders) JobsOfEmployer(ctx context.Context, employerID uint) ([]models.Job, error) {
	return l.JobsByEmployerID.Load(ctx, employerID)()
}

func (l *Loaders) User(ctx context.Context, userID uint) (*models.User, error) {
	return l.UserByID.Load(ctx, userID)()
}

func (l *Loaders) AllApplicationsOfJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	return l.ApplicationsByJobID.Load(ctx, jobID)()
}

func (l *Loaders) UserApplicationsOfJob(ctx context.Context, jobID uint, userID uint) ([]models.Application, error) {
	return l.ApplicationsByJobUser.Load(ctx, repositories.JobUserPair{JobID: jobID, UserID: userID})()
}

func (l *Loaders) ApplicationsOfUser(ctx context.Context, userID uint) ([]models.Application, error) {
	return l.ApplicationsByUserID.Load(ctx, userID)()
}

// ClearAll リクエスト内のキャッシュを全て捨てる。書き込みの後に呼ぶ
func (l *Loaders) ClearAll() {
	l.EmployerByID.ClearAll()
	l.JobByID.ClearAll()
	l.JobsByEmployerID.ClearAll()
	l.UserByID.ClearAll()
	l.ApplicationsByJobID.ClearAll()
	l.ApplicationsByJobUser.ClearAll()
	l.ApplicationsByUserID.ClearAll()
}
