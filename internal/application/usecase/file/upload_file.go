package file

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/adapters/event"
	"github.com/khoahotran/meetapp/internal/application/service"
	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

const avatarFolder = "avatars"

type EventPublisher interface {
	PublishFileEvent(ctx context.Context, payload event.FileEventPayload) error
}

type UploadFileUseCase struct {
	fileRepo  file.Repository
	uploader  service.Uploader
	publisher EventPublisher
	logger    logger.Logger
}

func NewUploadFileUseCase(r file.Repository, u service.Uploader, p EventPublisher, log logger.Logger) *UploadFileUseCase {
	return &UploadFileUseCase{fileRepo: r, uploader: u, publisher: p, logger: log}
}

type UploadFileInput struct {
	UserID int64
	Name   string
	File   io.Reader
}

var tracer = otel.Tracer("file_usecase")

func (uc *UploadFileUseCase) Execute(ctx context.Context, input UploadFileInput) (*file.File, error) {
	ctx, span := tracer.Start(ctx, "UploadFile.Execute")
	defer span.End()

	if input.File == nil || input.Name == "" {
		return nil, apperror.NewInvalidInput("missing file", nil).WithMessage("File not provided.")
	}

	publicID := uuid.NewString()
	url, err := uc.uploader.Upload(ctx, input.File, avatarFolder, publicID)
	if err != nil {
		err = apperror.NewInternal("failed to upload file", err)
		span.RecordError(err)
		return nil, err
	}

	f := &file.File{
		Name: input.Name,
		Path: path.Join(avatarFolder, publicID),
		URL:  url,
	}
	if err := uc.fileRepo.Save(ctx, f); err != nil {
		if delErr := uc.uploader.Delete(context.WithoutCancel(ctx), f.Path); delErr != nil {
			uc.logger.Error("Failed to remove orphaned upload", delErr, zap.String("path", f.Path))
		}
		span.RecordError(err)
		return nil, err
	}

	payload := event.FileEventPayload{
		EventType: event.FileEventTypeUploaded,
		FileID:    f.ID,
		UserID:    input.UserID,
		PublicID:  f.Path,
		URL:       f.URL,
	}
	if err := uc.publisher.PublishFileEvent(ctx, payload); err != nil {
		uc.logger.Error("Failed to publish Kafka 'file.uploaded' event", err, zap.Int64("file_id", f.ID))
	}

	span.SetAttributes(attribute.Int64("file_id", f.ID))
	return f, nil
}
