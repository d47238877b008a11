// Package apperrors はAPIの呼び出し元にそのまま返すドメインエラーを定義する。
// メッセージ文字列がクライアントとの契約になる（数値コードは持たない）。
package apperrors

import (
	"errors"
	"fmt"

	"job-board-api/constants"
)

// Kind はエラーの分類
type Kind int

const (
	KindAuth Kind = iota + 1
	KindPrivilege
	KindNotFound
	KindConflict
	KindValidation
	KindCredential
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindPrivilege:
		return "privilege"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindCredential:
		return "credential"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is はKindとMessageが一致すれば同じエラーとみなす
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrInvalidHeader             = &Error{Kind: KindAuth, Message: constants.ErrInvalidAuthorizationHeader}
	ErrInvalidToken              = &Error{Kind: KindAuth, Message: constants.ErrInvalidToken}
	ErrExpiredToken              = &Error{Kind: KindAuth, Message: constants.ErrExpiredToken}
	ErrAuthenticatedUserNotFound = &Error{Kind: KindAuth, Message: constants.ErrAuthenticatedUserNotFound}

	ErrInsufficientPrivileges = &Error{Kind: KindPrivilege, Message: constants.ErrInsufficientPrivileges}

	ErrAlreadyApplied = &Error{Kind: KindConflict, Message: constants.ErrAlreadyApplied}

	ErrNoFieldsProvided = &Error{Kind: KindValidation, Message: constants.ErrNoFieldsProvided}
	ErrInvalidRole      = &Error{Kind: KindValidation, Message: constants.ErrInvalidRole}
	ErrPasswordTooLong  = &Error{Kind: KindValidation, Message: constants.ErrPasswordTooLong}

	ErrInvalidPassword = &Error{Kind: KindCredential, Message: constants.ErrInvalidPassword}
)

// NotFound は "<Resource> not found." 形式のエラーを返す
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found.", resource)}
}

// AlreadyExists は "<Resource> already exists." 形式のエラーを返す
func AlreadyExists(resource string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("%s already exists.", resource)}
}

// IsCredential はリクエストの認証情報そのものに起因するエラーかどうかを返す。
// ロールゲートが未認証として扱ってよいのはこれらのエラーだけ。
func IsCredential(err error) bool {
	return errors.Is(err, ErrInvalidHeader) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken)
}

// As はerrチェーンから*Errorを取り出す
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf はerrのKindを返す。ドメインエラーでなければ0
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return 0
}
