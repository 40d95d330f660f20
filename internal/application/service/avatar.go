package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/internal/domain/user"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

// AvatarResolver joins a user with its avatar file.
type AvatarResolver struct {
	files  file.Repository
	logger logger.Logger
}

func NewAvatarResolver(files file.Repository, log logger.Logger) *AvatarResolver {
	return &AvatarResolver{files: files, logger: log}
}

// View returns the user's public view. A dangling avatar reference yields a
// view without avatar.
func (r *AvatarResolver) View(ctx context.Context, u *user.User) (*user.View, error) {
	if u.AvatarID == nil {
		return user.NewView(u, nil), nil
	}

	avatar, err := r.files.FindByID(ctx, *u.AvatarID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			r.logger.Warn("Avatar file missing for user", zap.Int64("user_id", u.ID), zap.Int64("avatar_id", *u.AvatarID))
			return user.NewView(u, nil), nil
		}
		return nil, err
	}
	return user.NewView(u, avatar), nil
}
