package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/meetapp/internal/domain/user"
	"github.com/khoahotran/meetapp/internal/mocks"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/auth"
	"github.com/khoahotran/meetapp/pkg/logger"
	"github.com/khoahotran/meetapp/pkg/validation"
)

func TestCreateUser_HashesPasswordBeforeStoring(t *testing.T) {
	users := &mocks.UserRepository{}
	uc := NewCreateUserUseCase(users, logger.NewNopLogger())

	var stored *user.User
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, apperror.NewNotFound("user", "ana@example.com"))
	users.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*user.User)
			stored.ID = 11
		}).
		Return(nil)

	out, err := uc.Execute(context.Background(), validation.Payload{
		"name": "Ana", "email": "ana@example.com", "password": "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, &CreateUserOutput{ID: 11, Name: "Ana", Email: "ana@example.com"}, out)
	require.NotNil(t, stored)
	assert.NotContains(t, stored.PasswordHash, "secret1")
	assert.True(t, stored.CheckPassword("secret1"))
	assert.False(t, stored.CheckPassword("secret2"))
	users.AssertExpectations(t)
}

func TestCreateUser_ExistingEmail(t *testing.T) {
	users := &mocks.UserRepository{}
	uc := NewCreateUserUseCase(users, logger.NewNopLogger())
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(&user.User{ID: 1, Email: "ana@example.com"}, nil)

	_, err := uc.Execute(context.Background(), validation.Payload{
		"name": "Ana", "email": "ana@example.com", "password": "secret1",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "User already exists.", appErr.Message)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_StoreRejectsDuplicate(t *testing.T) {
	users := &mocks.UserRepository{}
	uc := NewCreateUserUseCase(users, logger.NewNopLogger())
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, apperror.NewNotFound("user", "ana@example.com"))
	users.On("Create", mock.Anything, mock.Anything).Return(apperror.NewConflict("user", "email", "ana@example.com"))

	_, err := uc.Execute(context.Background(), validation.Payload{
		"name": "Ana", "email": "ana@example.com", "password": "secret1",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "User already exists.", appErr.Message)
}

func TestCreateUser_ReportsEveryInvalidField(t *testing.T) {
	uc := NewCreateUserUseCase(&mocks.UserRepository{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), validation.Payload{"email": "nope", "password": "abc"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, []string{
		"Name not provided.",
		"Email must be a valid email.",
		"Password must be at least 6 characters.",
	}, appErr.Messages)
}

func TestCreateUser_NonTextFieldsAreNotProvided(t *testing.T) {
	users := &mocks.UserRepository{}
	uc := NewCreateUserUseCase(users, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), validation.Payload{
		"name": float64(123), "email": true, "password": "secret1",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, []string{"Name not provided.", "Email not provided."}, appErr.Messages)
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_PasswordOverBcryptLimit(t *testing.T) {
	users := &mocks.UserRepository{}
	uc := NewCreateUserUseCase(users, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), validation.Payload{
		"name": "Ana", "email": "ana@example.com", "password": strings.Repeat("a", 80),
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, []string{"Password must be at most 72 bytes."}, appErr.Messages)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPasswordError_TooLongIsClientError(t *testing.T) {
	err := passwordError(auth.ErrPasswordTooLong)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, "Password must be at most 72 bytes.", appErr.Message)

	assert.ErrorIs(t, passwordError(auth.ErrEmptyPassword), apperror.ErrInternal)
}

func TestCreateRules_NonTextValues(t *testing.T) {
	for _, bad := range []any{float64(123), false, []any{"x"}} {
		err := validation.Validate(CreateRules(), validation.Payload{"name": bad, "email": bad, "password": "secret1"})

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"Name not provided.", "Email not provided."}, verr.Messages, "%v", bad)
	}
}
