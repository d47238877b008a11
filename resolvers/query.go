package resolvers

import (
	"context"
	"job-board-api/identity"
	"job-board-api/middlewares"
)

func (r *Resolver) Jobs(ctx context.Context) ([]*JobResolver, error) {
	return middlewares.Guard(ctx, r.gate, anyone, func(ctx context.Context) ([]*JobResolver, error) {
		jobs, err := r.jobs.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return r.jobList(identity.FromContext(ctx), jobs), nil
	})
}

func (r *Resolver) Job(ctx context.Context, args struct{ ID int32 }) (*JobResolver, error) {
	return middlewares.Guard(ctx, r.gate, anyone, func(ctx context.Context) (*JobResolver, error) {
		job, err := r.jobs.FindById(ctx, uint(args.ID))
		if err != nil || job == nil {
			return nil, err
		}
		return r.newJob(identity.FromContext(ctx), *job), nil
	})
}

func (r *Resolver) Employers(ctx context.Context) ([]*EmployerResolver, error) {
	return middlewares.Guard(ctx, r.gate, anyone, func(ctx context.Context) ([]*EmployerResolver, error) {
		employers, err := r.employers.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		caller := identity.FromContext(ctx)
		result := make([]*EmployerResolver, len(employers))
		for i := range employers {
			result[i] = r.newEmployer(caller, employers[i])
		}
		return result, nil
	})
}

func (r *Resolver) Employer(ctx context.Context, args struct{ ID int32 }) (*EmployerResolver, error) {
	return middlewares.Guard(ctx, r.gate, anyone, func(ctx context.Context) (*EmployerResolver, error) {
		employer, err := r.employers.FindById(ctx, uint(args.ID))
		if err != nil || employer == nil {
			return nil, err
		}
		return r.newEmployer(identity.FromContext(ctx), *employer), nil
	})
}

func (r *Resolver) Users(ctx context.Context) ([]*UserResolver, error) {
	return middlewares.Guard(ctx, r.gate, signedIn, func(ctx context.Context) ([]*UserResolver, error) {
		users, err := r.users.FindVisible(ctx)
		if err != nil {
			return nil, err
		}
		caller := identity.FromContext(ctx)
		result := make([]*UserResolver, len(users))
		for i := range users {
			result[i] = r.newUser(caller, users[i])
		}
		return result, nil
	})
}

func (r *Resolver) Applications(ctx context.Context) ([]*ApplicationResolver, error) {
	return middlewares.Guard(ctx, r.gate, signedIn, func(ctx context.Context) ([]*ApplicationResolver, error) {
		applications, err := r.applications.FindVisible(ctx)
		if err != nil {
			return nil, err
		}
		return r.applicationList(identity.FromContext(ctx), applications), nil
	})
}
