package meetup

import (
	"context"

	"github.com/khoahotran/meetapp/internal/domain/meetup"
	"github.com/khoahotran/meetapp/pkg/logger"
)

type GetMeetupUseCase struct {
	meetupRepo meetup.Repository
	logger     logger.Logger
}

func NewGetMeetupUseCase(repo meetup.Repository, log logger.Logger) *GetMeetupUseCase {
	return &GetMeetupUseCase{meetupRepo: repo, logger: log}
}

// Execute only returns meetups owned by organizerID; others read as not found.
func (uc *GetMeetupUseCase) Execute(ctx context.Context, id, organizerID int64) (*meetup.Meetup, error) {
	ctx, span := tracer.Start(ctx, "GetMeetup.Execute")
	defer span.End()

	m, err := uc.meetupRepo.FindByID(ctx, id, organizerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return m, nil
}
