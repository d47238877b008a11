package services

import (
	"context"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/dto"
	"job-board-api/identity"
	"job-board-api/models"
	"job-board-api/repositories"
	"job-board-api/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// untouchedUnitOfWork 呼ばれたらテストを失敗させる
type untouchedUnitOfWork struct {
	t *testing.T
}

func (u untouchedUnitOfWork) Do(context.Context, func(repositories.Repositories) error) error {
	u.t.Fatal("storage must not be touched")
	return nil
}

func TestUpdateValidatesBeforeTouchingStorage(t *testing.T) {
	ctx := context.Background()

	employers := NewEmployerService(nil, untouchedUnitOfWork{t}, nil)
	_, err := employers.Update(ctx, 1, dto.UpdateEmployerInput{})
	assert.ErrorIs(t, err, apperrors.ErrNoFieldsProvided)

	jobs := NewJobService(nil, untouchedUnitOfWork{t}, nil)
	_, err = jobs.Update(ctx, 1, dto.UpdateJobInput{})
	assert.ErrorIs(t, err, apperrors.ErrNoFieldsProvided)
}

type serviceSet struct {
	db           *gorm.DB
	fixture      testutil.Fixture
	employers    IEmployerService
	jobs         IJobService
	users        IUserService
	applications IApplicationService
}

func newServiceSet(t *testing.T) serviceSet {
	t.Helper()
	db := testutil.OpenTestDB(t)
	fixture := testutil.Seed(t, db)
	repos := repositories.NewRepositories(db)
	uow := repositories.NewUnitOfWork(db)
	return serviceSet{
		db:           db,
		fixture:      fixture,
		employers:    NewEmployerService(repos.Employers, uow, nil),
		jobs:         NewJobService(repos.Jobs, uow, nil),
		users:        NewUserService(repos.Users, uow, NewBcryptHasher(bcrypt.MinCost), nil),
		applications: NewApplicationService(repos.Applications, uow, nil),
	}
}

func asCaller(user models.User) context.Context {
	return identity.WithCaller(context.Background(), &identity.Caller{ID: user.ID, Email: user.Email, Role: user.Role})
}

func TestEmployerServiceUniqueness(t *testing.T) {
	s := newServiceSet(t)
	ctx := asCaller(s.fixture.Admin)

	_, err := s.employers.Create(ctx, dto.CreateEmployerInput{Name: "Dup", ContactEmail: s.fixture.Employers[0].ContactEmail, Industry: "x"})
	assert.ErrorIs(t, err, apperrors.AlreadyExists(constants.ResourceEmployer))

	taken := s.fixture.Employers[1].ContactEmail
	_, err = s.employers.Update(ctx, s.fixture.Employers[0].ID, dto.UpdateEmployerInput{ContactEmail: &taken})
	assert.ErrorIs(t, err, apperrors.AlreadyExists(constants.ResourceEmployer))

	// 自分自身のメールアドレスへの更新は許可する
	own := s.fixture.Employers[0].ContactEmail
	name := "Acme Corp"
	updated, err := s.employers.Update(ctx, s.fixture.Employers[0].ID, dto.UpdateEmployerInput{Name: &name, ContactEmail: &own})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)

	_, err = s.employers.Update(ctx, 9999, dto.UpdateEmployerInput{Name: &name})
	assert.ErrorIs(t, err, apperrors.NotFound(constants.ResourceEmployer))

	found, err := s.employers.FindById(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestJobServiceChecksEmployer(t *testing.T) {
	s := newServiceSet(t)
	ctx := asCaller(s.fixture.Admin)
	before := testutil.Count(t, s.db, &models.Job{})

	_, err := s.jobs.Create(ctx, dto.CreateJobInput{Title: "x", Description: "y", EmployerID: 9999})
	assert.ErrorIs(t, err, apperrors.NotFound(constants.ResourceEmployer))
	assert.Equal(t, before, testutil.Count(t, s.db, &models.Job{}))

	var missing uint = 9999
	_, err = s.jobs.Update(ctx, s.fixture.Jobs[0].ID, dto.UpdateJobInput{EmployerID: &missing})
	assert.ErrorIs(t, err, apperrors.NotFound(constants.ResourceEmployer))

	assert.ErrorIs(t, s.jobs.Delete(ctx, 9999), apperrors.NotFound(constants.ResourceJob))
}

func TestDeleteJobCascadesToApplications(t *testing.T) {
	s := newServiceSet(t)
	job := s.fixture.Jobs[0]

	require.NoError(t, s.jobs.Delete(asCaller(s.fixture.Admin), job.ID))

	var remaining int64
	require.NoError(t, s.db.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
	assert.Equal(t, int64(len(s.fixture.Applications)-2), testutil.Count(t, s.db, &models.Application{}))
}

func TestApplicationServiceApply(t *testing.T) {
	s := newServiceSet(t)
	ctx := asCaller(s.fixture.Bob)

	created, err := s.applications.Apply(ctx, s.fixture.Jobs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, s.fixture.Bob.ID, created.UserID)

	before := testutil.Count(t, s.db, &models.Application{})
	_, err = s.applications.Apply(ctx, s.fixture.Jobs[1].ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assert.Equal(t, before, testutil.Count(t, s.db, &models.Application{}))

	_, err = s.applications.Apply(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.NotFound(constants.ResourceJob))

	_, err = s.applications.Apply(context.Background(), s.fixture.Jobs[1].ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPrivileges)
}

func TestApplicationServiceFindVisible(t *testing.T) {
	s := newServiceSet(t)

	own, err := s.applications.FindVisible(asCaller(s.fixture.Alice))
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, application := range own {
		assert.Equal(t, s.fixture.Alice.ID, application.UserID)
	}

	all, err := s.applications.FindVisible(asCaller(s.fixture.Admin))
	require.NoError(t, err)
	assert.Len(t, all, len(s.fixture.Applications))

	none, err := s.applications.FindVisible(context.Background())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserServiceAddUser(t *testing.T) {
	s := newServiceSet(t)
	before := testutil.Count(t, s.db, &models.User{})

	_, err := s.users.AddUser(asCaller(s.fixture.Alice), dto.AddUserInput{Username: "eve", Email: "eve@example.com", Password: "p", Role: constants.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPrivileges)
	assert.Equal(t, before, testutil.Count(t, s.db, &models.User{}))

	_, err = s.users.AddUser(context.Background(), dto.AddUserInput{Username: "eve", Email: "eve@example.com", Password: "p", Role: "root"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)

	created, err := s.users.AddUser(asCaller(s.fixture.Admin), dto.AddUserInput{Username: "eve", Email: "eve@example.com", Password: "p", Role: constants.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, created.Role)
	assert.NotEqual(t, "p", created.PasswordHash)

	_, err = s.users.AddUser(context.Background(), dto.AddUserInput{Username: "eve2", Email: "eve@example.com", Password: "p", Role: constants.RoleUser})
	assert.ErrorIs(t, err, apperrors.AlreadyExists(constants.ResourceUser))
}

// countingHasher Hashの呼び出し回数を数える
type countingHasher struct {
	IPasswordHasher
	hashes int
}

func (h *countingHasher) Hash(plaintext string) (string, error) {
	h.hashes++
	return h.IPasswordHasher.Hash(plaintext)
}

func TestUserServiceAddUserRejectsBeforeHashing(t *testing.T) {
	db := testutil.OpenTestDB(t)
	fixture := testutil.Seed(t, db)
	hasher := &countingHasher{IPasswordHasher: NewBcryptHasher(bcrypt.MinCost)}
	users := NewUserService(repositories.NewUserRepository(db), repositories.NewUnitOfWork(db), hasher, nil)
	before := testutil.Count(t, db, &models.User{})

	_, err := users.AddUser(context.Background(), dto.AddUserInput{Username: "dup", Email: fixture.Alice.Email, Password: "p", Role: constants.RoleUser})
	assert.ErrorIs(t, err, apperrors.AlreadyExists(constants.ResourceUser))
	assert.Zero(t, hasher.hashes)

	_, err = users.AddUser(context.Background(), dto.AddUserInput{Username: "long", Email: "long@example.com", Password: strings.Repeat("x", 73), Role: constants.RoleUser})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPasswordTooLong)
	assert.Equal(t, constants.ErrPasswordTooLong, err.Error())
	assert.Equal(t, before, testutil.Count(t, db, &models.User{}))
}

func TestUserServiceFindVisibleAndDelete(t *testing.T) {
	s := newServiceSet(t)

	own, err := s.users.FindVisible(asCaller(s.fixture.Bob))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, s.fixture.Bob.ID, own[0].ID)

	all, err := s.users.FindVisible(asCaller(s.fixture.Admin))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.users.Delete(asCaller(s.fixture.Admin), s.fixture.Bob.ID))
	assert.Equal(t, int64(2), testutil.Count(t, s.db, &models.User{}))
	assert.Equal(t, int64(len(s.fixture.Applications)-2), testutil.Count(t, s.db, &models.Application{}))

	assert.ErrorIs(t, s.users.Delete(asCaller(s.fixture.Admin), s.fixture.Bob.ID), apperrors.NotFound(constants.ResourceUser))
}
