package dto

type CreateEmployerInput struct {
	Name         string
	ContactEmail string
	Industry     string
}

// UpdateEmployerInput nilのフィールドは更新しない
type UpdateEmployerInput struct {
	Name         *string
	ContactEmail *string
	Industry     *string
}

func (in UpdateEmployerInput) IsEmpty() bool {
	return in.Name == nil && in.ContactEmail == nil && in.Industry == nil
}
