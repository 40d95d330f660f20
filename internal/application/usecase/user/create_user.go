package user

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/internal/domain/user"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/auth"
	"github.com/khoahotran/meetapp/pkg/logger"
	"github.com/khoahotran/meetapp/pkg/validation"
)

const (
	msgUserExists      = "User already exists."
	msgPasswordTooLong = "Password must be at most 72 bytes."
)

func CreateRules() validation.RuleSet {
	return validation.Rules(
		validation.Field("name",
			validation.Required("Name not provided."),
		),
		validation.Field("email",
			validation.Required("Email not provided."),
			validation.Email("Email must be a valid email."),
		),
		validation.Field("password",
			validation.Required("Password not provided."),
			validation.MinLength(6, "Password must be at least 6 characters."),
			validation.MaxBytes(auth.MaxPasswordBytes, msgPasswordTooLong),
		),
	)
}

type CreateUserUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewCreateUserUseCase(repo user.Repository, log logger.Logger) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: repo, logger: log}
}

type CreateUserOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var tracer = otel.Tracer("user_usecase")

func (uc *CreateUserUseCase) Execute(ctx context.Context, payload validation.Payload) (*CreateUserOutput, error) {
	ctx, span := tracer.Start(ctx, "CreateUser.Execute")
	defer span.End()

	var verr *validation.Error
	if err := validation.Validate(CreateRules(), payload); errors.As(err, &verr) {
		return nil, apperror.NewValidation(verr.Messages)
	}
	fields, err := payload.Texts("name", "email", "password")
	if errors.As(err, &verr) {
		return nil, apperror.NewValidation(verr.Messages)
	}
	name, email, password := fields[0], fields[1], fields[2]

	_, err = uc.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.NewConflict("user", "email", email).WithMessage(msgUserExists)
	case !errors.Is(err, apperror.ErrNotFound):
		span.RecordError(err)
		return nil, err
	}

	u, err := user.NewUser(name, email, password)
	if err != nil {
		err = passwordError(err)
		span.RecordError(err)
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperror.ErrConflict) {
			return nil, appErr.WithMessage(msgUserExists)
		}
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("User created", zap.Int64("user_id", u.ID))
	span.SetAttributes(attribute.Int64("user_id", u.ID))
	return &CreateUserOutput{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// passwordError keeps rejected password input a client error.
func passwordError(err error) error {
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return apperror.NewInvalidInput("password rejected by hasher", err).WithMessage(msgPasswordTooLong)
	}
	return apperror.NewInternal("failed to hash password", err)
}
