package resolvers

import (
	"context"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/identity"
	"job-board-api/loaders"
	"job-board-api/models"
	"job-board-api/policies"
)

// 型ごとのリゾルバーは、ルートで認可された呼び出し元をcallerとして持ち回る

type EmployerResolver struct {
	root     *Resolver
	caller   *identity.Caller
	employer models.Employer
}

type JobResolver struct {
	root   *Resolver
	caller *identity.Caller
	job    models.Job
}

type UserResolver struct {
	root   *Resolver
	caller *identity.Caller
	user   models.User
}

type ApplicationResolver struct {
	root        *Resolver
	caller      *identity.Caller
	application models.Application
}

func (r *Resolver) newEmployer(caller *identity.Caller, e models.Employer) *EmployerResolver {
	return &EmployerResolver{root: r, caller: caller, employer: e}
}

func (r *Resolver) newJob(caller *identity.Caller, j models.Job) *JobResolver {
	return &JobResolver{root: r, caller: caller, job: j}
}

func (r *Resolver) newUser(caller *identity.Caller, u models.User) *UserResolver {
	return &UserResolver{root: r, caller: caller, user: u}
}

func (r *Resolver) jobList(caller *identity.Caller, jobs []models.Job) []*JobResolver {
	result := make([]*JobResolver, len(jobs))
	for i := range jobs {
		result[i] = r.newJob(caller, jobs[i])
	}
	return result
}

func (r *Resolver) applicationList(caller *identity.Caller, applications []models.Application) []*ApplicationResolver {
	result := make([]*ApplicationResolver, len(applications))
	for i := range applications {
		result[i] = &ApplicationResolver{root: r, caller: caller, application: applications[i]}
	}
	return result
}

func requestLoaders(ctx context.Context, r *Resolver) (*loaders.Loaders, error) {
	l, err := loaders.For(ctx)
	if err != nil {
		return nil, r.gate.Mask(ctx, err)
	}
	return l, nil
}

// Employer

func (r *EmployerResolver) ID() int32 {
	return int32(r.employer.ID)
}

func (r *EmployerResolver) Name() string {
	return r.employer.Name
}

func (r *EmployerResolver) ContactEmail() string {
	return r.employer.ContactEmail
}

func (r *EmployerResolver) Industry() string {
	return r.employer.Industry
}

func (r *EmployerResolver) Jobs(ctx context.Context) ([]*JobResolver, error) {
	l, err := requestLoaders(ctx, r.root)
	if err != nil {
		return nil, err
	}
	jobs, err := l.JobsOfEmployer(ctx, r.employer.ID)
	if err != nil {
		return nil, r.root.gate.Mask(ctx, err)
	}
	return r.root.jobList(r.caller, jobs), nil
}

// Job

func (r *JobResolver) ID() int32 {
	return int32(r.job.ID)
}

func (r *JobResolver) Title() string {
	return r.job.Title
}

func (r *JobResolver) Description() string {
	return r.job.Description
}

func (r *JobResolver) EmployerID() int32 {
	return int32(r.job.EmployerID)
}

// Employer 求人の雇用主は必須。見つからなければエラー
func (r *JobResolver) Employer(ctx context.Context) (*EmployerResolver, error) {
	l, err := requestLoaders(ctx, r.root)
	if err != nil {
		return nil, err
	}
	employer, err := l.Employer(ctx, r.job.EmployerID)
	if err != nil {
		return nil, r.root.gate.Mask(ctx, err)
	}
	if employer == nil {
		return nil, apperrors.NotFound(constants.ResourceEmployer)
	}
	return r.root.newEmployer(r.caller, *employer), nil
}

// Applications 管理者は全件、一般ユーザーは自分の応募だけ、未認証は空
func (r *JobResolver) Applications(ctx context.Context) ([]*ApplicationResolver, error) {
	scope := policies.ApplicationsScope(r.caller)
	if scope == policies.ScopeNone {
		return []*ApplicationResolver{}, nil
	}

	l, err := requestLoaders(ctx, r.root)
	if err != nil {
		return nil, err
	}

	var applications []models.Application
	if scope == policies.ScopeAll {
		applications, err = l.AllApplicationsOfJob(ctx, r.job.ID)
	} else {
		applications, err = l.UserApplicationsOfJob(ctx, r.job.ID, r.caller.ID)
	}
	if err != nil {
		return nil, r.root.gate.Mask(ctx, err)
	}
	return r.root.applicationList(r.caller, applications), nil
}

// User

func (r *UserResolver) ID() int32 {
	return int32(r.user.ID)
}

func (r *UserResolver) Username() string {
	return r.user.Username
}

func (r *UserResolver) Email() string {
	return r.user.Email
}

func (r *UserResolver) Role() string {
	return r.user.Role
}

func (r *UserResolver) Applications(ctx context.Context) ([]*ApplicationResolver, error) {
	if !policies.CanSeeUserApplications(r.caller, r.user.ID) {
		return []*ApplicationResolver{}, nil
	}

	l, err := requestLoaders(ctx, r.root)
	if err != nil {
		return nil, err
	}
	applications, err := l.ApplicationsOfUser(ctx, r.user.ID)
	if err != nil {
		return nil, r.root.gate.Mask(ctx, err)
	}
	return r.root.applicationList(r.caller, applications), nil
}

// Application

func (r *ApplicationResolver) ID() int32 {
	return int32(r.application.ID)
}

func (r *ApplicationResolver) UserID() int32 {
	return int32(r.application.UserID)
}

func (r *ApplicationResolver) JobID() int32 {
	return int32(r.application.JobID)
}

func (r *ApplicationResolver) User(ctx context.Context) (*UserResolver, error) {
	l, err := requestLoaders(ctx, r.root)
	if err != nil {
		return nil, err
	}
	user, err := l.User(ctx, r.application.UserID)
	if err != nil || user == nil {
		return nil, r.root.gate.Mask(ctx, err)
	}
	return r.root.newUser(r.caller, *user), nil
}

func (r *ApplicationResolver) Job(ctx context.Context) (*JobResolver, error) {
	l, err := requestLoaders(ctx, r.root)
	if err != nil {
		return nil, err
	}
	job, err := l.Job(ctx, r.application.JobID)
	if err != nil || job == nil {
		return nil, r.root.gate.Mask(ctx, err)
	}
	return r.root.newJob(r.caller, *job), nil
}
