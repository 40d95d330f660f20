package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/meetapp/internal/application/service"
	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/internal/domain/user"
	"github.com/khoahotran/meetapp/internal/mocks"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/auth"
	"github.com/khoahotran/meetapp/pkg/logger"
	"github.com/khoahotran/meetapp/pkg/validation"
)

type loginFixture struct {
	users  *mocks.UserRepository
	files  *mocks.FileRepository
	jwtSvc *auth.JWTService
	uc     *LoginUseCase
}

func newLoginFixture(t *testing.T) *loginFixture {
	t.Helper()
	users := &mocks.UserRepository{}
	files := &mocks.FileRepository{}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	log := logger.NewNopLogger()
	t.Cleanup(func() {
		users.AssertExpectations(t)
		files.AssertExpectations(t)
	})
	return &loginFixture{
		users:  users,
		files:  files,
		jwtSvc: jwtSvc,
		uc:     NewLoginUseCase(users, service.NewAvatarResolver(files, log), jwtSvc, log),
	}
}

func storedUser(t *testing.T, password string) *user.User {
	t.Helper()
	u, err := user.NewUser("Ana", "ana@example.com", password)
	require.NoError(t, err)
	u.ID = 7
	return u
}

func TestLogin_Success(t *testing.T) {
	f := newLoginFixture(t)
	u := storedUser(t, "secret1")
	avatarID := int64(3)
	u.AvatarID = &avatarID

	f.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(u, nil)
	f.files.On("FindByID", mock.Anything, avatarID).
		Return(&file.File{ID: avatarID, Name: "me.png", Path: "avatars/me", URL: "https://cdn/me"}, nil)

	out, err := f.uc.Execute(context.Background(), validation.Payload{"email": "ana@example.com", "password": "secret1"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), out.User.ID)
	assert.Equal(t, "Ana", out.User.Name)
	require.NotNil(t, out.User.Avatar)
	assert.Equal(t, "https://cdn/me", out.User.Avatar.URL)

	claims, err := f.jwtSvc.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), u.PasswordHash)
}

func TestLogin_ShortLegacyPasswordIsAccepted(t *testing.T) {
	f := newLoginFixture(t)
	u := storedUser(t, "abc")
	f.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(u, nil)

	out, err := f.uc.Execute(context.Background(), validation.Payload{"email": "ana@example.com", "password": "abc"})
	require.NoError(t, err)
	assert.Nil(t, out.User.Avatar)
}

func TestLogin_Rejections(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		f := newLoginFixture(t)
		f.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(storedUser(t, "secret1"), nil)

		_, err := f.uc.Execute(context.Background(), validation.Payload{"email": "ana@example.com", "password": "secret2"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newLoginFixture(t)
		f.users.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, apperror.NewNotFound("user", "ghost@example.com"))

		_, err := f.uc.Execute(context.Background(), validation.Payload{"email": "ghost@example.com", "password": "secret1"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestLogin_SameMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	f := newLoginFixture(t)
	f.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(storedUser(t, "secret1"), nil)
	f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, apperror.NewNotFound("user", "ghost@example.com"))

	_, wrongPassword := f.uc.Execute(context.Background(), validation.Payload{"email": "ana@example.com", "password": "nope123"})
	_, unknownEmail := f.uc.Execute(context.Background(), validation.Payload{"email": "ghost@example.com", "password": "nope123"})

	var a, b *apperror.AppError
	require.ErrorAs(t, wrongPassword, &a)
	require.ErrorAs(t, unknownEmail, &b)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, a.ToJSON(), b.ToJSON())
}

func TestLogin_Validation(t *testing.T) {
	f := newLoginFixture(t)

	_, err := f.uc.Execute(context.Background(), validation.Payload{"email": "not-an-email"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, []string{"Email must be a valid email.", "Password not provided."}, appErr.Messages)
	f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLoginRules_NonTextValues(t *testing.T) {
	for _, bad := range []any{float64(123), true, []any{"ana@example.com"}} {
		err := validation.Validate(LoginRules(), validation.Payload{"email": bad, "password": bad})

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"Email not provided.", "Password not provided."}, verr.Messages, "%v", bad)
	}
}

func TestLogin_NumericEmailNeverReachesStore(t *testing.T) {
	f := newLoginFixture(t)

	_, err := f.uc.Execute(context.Background(), validation.Payload{"email": float64(123), "password": "secret1"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, []string{"Email not provided."}, appErr.Messages)
	f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}
