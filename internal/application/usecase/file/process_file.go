package file

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/adapters/event"
	"github.com/khoahotran/meetapp/internal/application/service"
	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

// AvatarTransformation is a square crop centered on the detected face.
const AvatarTransformation = "c_thumb,g_face,w_200,h_200"

type ProcessFileUseCase struct {
	fileRepo file.Repository
	uploader service.Uploader
	logger   logger.Logger
}

func NewProcessFileUseCase(r file.Repository, u service.Uploader, log logger.Logger) *ProcessFileUseCase {
	return &ProcessFileUseCase{fileRepo: r, uploader: u, logger: log}
}

func (uc *ProcessFileUseCase) Execute(ctx context.Context, payload event.FileEventPayload) error {
	l := uc.logger.With(zap.Int64("file_id", payload.FileID), zap.String("event_type", string(payload.EventType)))

	if payload.EventType != event.FileEventTypeUploaded {
		l.Info("Ignoring file event")
		return nil
	}

	f, err := uc.fileRepo.FindByID(ctx, payload.FileID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			l.Warn("File not found, skipping event")
			return nil
		}
		return apperror.NewInternal("failed to get file", err)
	}

	url, err := uc.uploader.TransformURL(f.Path, AvatarTransformation)
	if err != nil {
		return apperror.NewInternal("failed to build avatar URL", err)
	}
	if url == f.URL {
		l.Info("File already processed, skipping")
		return nil
	}

	f.URL = url
	if err := uc.fileRepo.Update(ctx, f); err != nil {
		return apperror.NewInternal("failed to update file", err)
	}

	l.Info("Successfully processed file")
	return nil
}
