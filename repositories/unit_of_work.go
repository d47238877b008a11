package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories 同じ*gorm.DB（トランザクションを含む）を共有するリポジトリの束
type Repositories struct {
	Employers    IEmployerRepository
	Jobs         IJobRepository
	Users        IUserRepository
	Applications IApplicationRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Employers:    NewEmployerRepository(db),
		Jobs:         NewJobRepository(db),
		Users:        NewUserRepository(db),
		Applications: NewApplicationRepository(db),
	}
}

// IUnitOfWork 1つのミューテーションを1トランザクションで実行する。
// fnがエラーを返すとロールバックされ、途中の変更は観測されない
type IUnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) IUnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
