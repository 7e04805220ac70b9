package user

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password does not match")

// Hasher turns a password into its stored form and checks candidates against it.
type Hasher interface {
	Hash(pwd string) (string, error)
	Compare(stored, pwd string) error
}

// NewHasher returns the hasher configured by name: "plain" (default) or "bcrypt".
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", "plain":
		return PlainHasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// PlainHasher stores passwords as typed, which is what the users file has always held.
type PlainHasher struct{}

func (PlainHasher) Hash(pwd string) (string, error) { return pwd, nil }

func (PlainHasher) Compare(stored, pwd string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(pwd)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(stored, pwd string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(pwd)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
