package user

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/internal/application/service"
	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/internal/domain/user"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/auth"
	"github.com/khoahotran/meetapp/pkg/logger"
	"github.com/khoahotran/meetapp/pkg/validation"
)

const msgEmailInUse = "Email already in use."

// UpdateRules only ask for the old password and its confirmation when a new
// password is sent.
func UpdateRules() validation.RuleSet {
	return validation.Rules(
		validation.Field("name",
			validation.Required("Name not provided."),
		),
		validation.Field("email",
			validation.Required("Email not provided."),
			validation.Email("Email must be a valid email."),
		),
		validation.Field("password",
			validation.MinLength(6, "Password must be at least 6 characters."),
			validation.MaxBytes(auth.MaxPasswordBytes, msgPasswordTooLong),
		),
		validation.Field("oldPassword",
			validation.RequiredWith("password", "Old password not provided."),
			validation.MinLength(6, "Old password must be at least 6 characters."),
		),
		validation.Field("confirmedPassword",
			validation.RequiredWith("password", "Confirmed password not provided."),
			validation.EqualsField("password", "Confirmed password does not match."),
			validation.MinLength(6, "Confirmed password must be at least 6 characters."),
		),
		validation.Field("avatar_id",
			validation.Numeric("Avatar id must be a number."),
		),
	)
}

type UpdateUserUseCase struct {
	userRepo user.Repository
	fileRepo file.Repository
	avatars  *service.AvatarResolver
	logger   logger.Logger
}

func NewUpdateUserUseCase(uRepo user.Repository, fRepo file.Repository, avatars *service.AvatarResolver, log logger.Logger) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: uRepo, fileRepo: fRepo, avatars: avatars, logger: log}
}

type UpdateUserInput struct {
	UserID  int64
	Payload validation.Payload
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*user.View, error) {
	ctx, span := tracer.Start(ctx, "UpdateUser.Execute")
	defer span.End()
	span.SetAttributes(attribute.Int64("user_id", input.UserID))

	p := input.Payload
	var verr *validation.Error
	if err := validation.Validate(UpdateRules(), p); errors.As(err, &verr) {
		return nil, apperror.NewValidation(verr.Messages)
	}
	fields, err := p.Texts("name", "email")
	if errors.As(err, &verr) {
		return nil, apperror.NewValidation(verr.Messages)
	}
	name, email := fields[0], fields[1]

	l := uc.logger.With(zap.Int64("user_id", input.UserID))

	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			l.Error("Authenticated user has no record", err)
		}
		span.RecordError(err)
		return nil, err
	}

	if email != u.Email {
		other, err := uc.userRepo.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != u.ID:
			return nil, apperror.NewConflict("user", "email", email).WithMessage(msgEmailInUse)
		case err != nil && !errors.Is(err, apperror.ErrNotFound):
			span.RecordError(err)
			return nil, err
		}
	}

	if oldPassword, ok := p.String("oldPassword"); ok {
		if !u.CheckPassword(oldPassword) {
			l.Warn("Profile update rejected", zap.String("reason", "password mismatch"))
			return nil, apperror.NewUnauthorized("password mismatch", nil)
		}
	}

	if p.Has("avatar_id") {
		avatarID, _ := p.Int64("avatar_id")
		if _, err := uc.fileRepo.FindByID(ctx, avatarID); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, apperror.NewInvalidInput(fmt.Sprintf("avatar %d does not exist", avatarID), err).
					WithMessage("Avatar not found.")
			}
			span.RecordError(err)
			return nil, err
		}
		u.AvatarID = &avatarID
	}

	u.Name = name
	u.Email = email
	if password, ok := p.String("password"); ok {
		if err := u.SetPassword(password); err != nil {
			err = passwordError(err)
			span.RecordError(err)
			return nil, err
		}
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperror.ErrConflict) {
			return nil, appErr.WithMessage(msgEmailInUse)
		}
		span.RecordError(err)
		return nil, err
	}

	updated, err := uc.userRepo.FindByID(ctx, u.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	l.Info("User updated")
	return uc.avatars.View(ctx, updated)
}
