package resolvers

import (
	"context"
	"job-board-api/dto"
	"job-board-api/identity"
	"job-board-api/middlewares"
)

type addEmployerArgs struct {
	Name         string
	ContactEmail string
	Industry     string
}

type updateEmployerArgs struct {
	EmployerID   int32
	Name         *string
	ContactEmail *string
	Industry     *string
}

type addJobArgs struct {
	Title       string
	Description string
	EmployerID  int32
}

type updateJobArgs struct {
	JobID       int32
	Title       *string
	Description *string
	EmployerID  *int32
}

type loginUserArgs struct {
	Email    string
	Password string
}

type addUserArgs struct {
	Username string
	Email    string
	Password string
	Role     string
}

func (r *Resolver) AddEmployer(ctx context.Context, args addEmployerArgs) (*EmployerResolver, error) {
	return middlewares.Guard(ctx, r.gate, adminOnly, func(ctx context.Context) (*EmployerResolver, error) {
		employer, err := r.employers.Create(ctx, dto.CreateEmployerInput{
			Name:         args.Name,
			ContactEmail: args.ContactEmail,
			Industry:     args.Industry,
		})
		if err != nil {
			return nil, err
		}
		invalidateLoaders(ctx)
		return r.newEmployer(identity.FromContext(ctx), *employer), nil
	})
}

func (r *Resolver) UpdateEmployer(ctx context.Context, args updateEmployerArgs) (*EmployerResolver, error) {
	return middlewares.Guard(ctx, r.gate, adminOnly, func(ctx context.Context) (*EmployerResolver, error) {
		employer, err := r.employers.Update(ctx, uint(args.EmployerID), dto.UpdateEmployerInput{
			Name:         args.Name,
			ContactEmail: args.ContactEmail,
			Industry:     args.Industry,
		})
		if err != nil {
			return nil, err
		}
		invalidateLoaders(ctx)
		return r.newEmployer(identity.FromContext(ctx), *employer), nil
	})
}

func (r *Resolver) DeleteEmployer(ctx context.Context, args struct{ EmployerID int32 }) (bool, error) {
	return middlewares.Guard(ctx, r.gate, adminOnly, func(ctx context.Context) (bool, error) {
		if err := r.employers.Delete(ctx, uint(args.EmployerID)); err != nil {
			return false, err
		}
		invalidateLoaders(ctx)
		return true, nil
	})
}

func (r *Resolver) AddJob(ctx context.Context, args addJobArgs) (*JobResolver, error) {
	return middlewares.Guard(ctx, r.gate, adminOnly, func(ctx context.Context) (*JobResolver, error) {
		job, err := r.jobs.Create(ctx, dto.CreateJobInput{
			Title:       args.Title,
			Description: args.Description,
			EmployerID:  uint(args.EmployerID),
		})
		if err != nil {
			return nil, err
		}
		invalidateLoaders(ctx)
		return r.newJob(identity.FromContext(ctx), *job), nil
	})
}

func (r *Resolver) UpdateJob(ctx context.Context, args updateJobArgs) (*JobResolver, error) {
	return middlewares.Guard(ctx, r.gate, adminOnly, func(ctx context.Context) (*JobResolver, error) {
		input := dto.UpdateJobInput{Title: args.Title, Description: args.Description}
		if args.EmployerID != nil {
			employerID := uint(*args.EmployerID)
			input.EmployerID = &employerID
		}

		job, err := r.jobs.Update(ctx, uint(args.JobID), input)
		if err != nil {
			return nil, err
		}
		invalidateLoaders(ctx)
		return r.newJob(identity.FromContext(ctx), *job), nil
	})
}

func (r *Resolver) DeleteJob(ctx context.Context, args struct{ JobID int32 }) (bool, error) {
	return middlewares.Guard(ctx, r.gate, adminOnly, func(ctx context.Context) (bool, error) {
		if err := r.jobs.Delete(ctx, uint(args.JobID)); err != nil {
			return false, err
		}
		invalidateLoaders(ctx)
		return true, nil
	})
}

func (r *Resolver) ApplyToJob(ctx context.Context, args struct{ JobID int32 }) (bool, error) {
	return middlewares.Guard(ctx, r.gate, userOnly, func(ctx context.Context) (bool, error) {
		if _, err := r.applications.Apply(ctx, uint(args.JobID)); err != nil {
			return false, err
		}
		invalidateLoaders(ctx)
		return true, nil
	})
}

func (r *Resolver) LoginUser(ctx context.Context, args loginUserArgs) (string, error) {
	return middlewares.Guard(ctx, r.gate, anonymousOnly, func(ctx context.Context) (string, error) {
		return r.auth.Login(ctx, dto.LoginInput{Email: args.Email, Password: args.Password})
	})
}

func (r *Resolver) LogoutUser(ctx context.Context) (bool, error) {
	return middlewares.Guard(ctx, r.gate, signedIn, func(ctx context.Context) (bool, error) {
		if err := r.auth.Logout(ctx, middlewares.AuthorizationHeader(ctx)); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (r *Resolver) AddUser(ctx context.Context, args addUserArgs) (*UserResolver, error) {
	return middlewares.Guard(ctx, r.gate, signUp, func(ctx context.Context) (*UserResolver, error) {
		user, err := r.users.AddUser(ctx, dto.AddUserInput{
			Username: args.Username,
			Email:    args.Email,
			Password: args.Password,
			Role:     args.Role,
		})
		if err != nil {
			return nil, err
		}
		invalidateLoaders(ctx)
		return r.newUser(identity.FromContext(ctx), *user), nil
	})
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ UserID int32 }) (bool, error) {
	return middlewares.Guard(ctx, r.gate, adminOnly, func(ctx context.Context) (bool, error) {
		if err := r.users.Delete(ctx, uint(args.UserID)); err != nil {
			return false, err
		}
		invalidateLoaders(ctx)
		return true, nil
	})
}
