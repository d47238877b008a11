package dto

type CreateJobInput struct {
	Title       string
	Description string
	EmployerID  uint
}

// UpdateJobInput nilのフィールドは更新しない
type UpdateJobInput struct {
	Title       *string
	Description *string
	EmployerID  *uint
}

func (in UpdateJobInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.EmployerID == nil
}
