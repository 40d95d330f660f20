package user

import (
	"context"
	"time"

	"github.com/khoahotran/meetapp/pkg/auth"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarID     *int64    `json:"avatar_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser hashes password before the record ever reaches a store.
func NewUser(name, email, password string) (*User, error) {
	u := &User{Name: name, Email: email}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) SetPassword(password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return auth.CheckPasswordHash(password, u.PasswordHash)
}

// Repository is the credential store. Lookups return an apperror NotFound
// when no record matches; Create and Update return a Conflict when the email
// is taken by another record.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}
