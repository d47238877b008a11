package services

import (
	"errors"
	"job-board-api/apperrors"

	"golang.org/x/crypto/bcrypt"
)

type IPasswordHasher interface {
	// Hash 72バイトを超えるパスワードはapperrors.ErrPasswordTooLong
	Hash(plaintext string) (string, error)
	// Verify 一致しなければapperrors.ErrInvalidPassword
	Verify(digest string, plaintext string) error
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) IPasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.ErrPasswordTooLong
		}
		return "", err
	}
	return string(hashedPassword), nil
}

func (h *BcryptHasher) Verify(digest string, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidPassword
	}
	return err
}
