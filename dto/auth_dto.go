package dto

// LoginInput ログインIDはメールアドレス
type LoginInput struct {
	Email    string
	Password string
}

type AddUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}
