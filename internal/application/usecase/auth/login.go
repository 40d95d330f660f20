package auth

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/internal/application/service"
	"github.com/khoahotran/meetapp/internal/domain/user"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/auth"
	"github.com/khoahotran/meetapp/pkg/logger"
	"github.com/khoahotran/meetapp/pkg/validation"
)

// LoginRules has no length check on password so accounts with short legacy
// passwords can still sign in.
func LoginRules() validation.RuleSet {
	return validation.Rules(
		validation.Field("email",
			validation.Required("Email not provided."),
			validation.Email("Email must be a valid email."),
		),
		validation.Field("password",
			validation.Required("Password not provided."),
		),
	)
}

type LoginUseCase struct {
	userRepo user.Repository
	avatars  *service.AvatarResolver
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, avatars *service.AvatarResolver, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		avatars:  avatars,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginOutput struct {
	User  *user.View `json:"user"`
	Token string     `json:"token"`
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, payload validation.Payload) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Login.Execute")
	defer span.End()

	var verr *validation.Error
	if err := validation.Validate(LoginRules(), payload); errors.As(err, &verr) {
		return nil, apperror.NewValidation(verr.Messages)
	}
	fields, err := payload.Texts("email", "password")
	if errors.As(err, &verr) {
		return nil, apperror.NewValidation(verr.Messages)
	}
	email, password := fields[0], fields[1]

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			uc.logger.Warn("Login rejected", zap.String("reason", "user not found"))
			err = apperror.NewUnauthorized("user not found", nil)
		}
		span.RecordError(err)
		return nil, err
	}

	if !u.CheckPassword(password) {
		uc.logger.Warn("Login rejected", zap.String("reason", "password mismatch"), zap.Int64("user_id", u.ID))
		err := apperror.NewUnauthorized("password mismatch", nil)
		span.RecordError(err)
		return nil, err
	}

	view, err := uc.avatars.View(ctx, u)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.Int64("user_id", u.ID))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user_id", u.ID))
	return &LoginOutput{User: view, Token: token}, nil
}
