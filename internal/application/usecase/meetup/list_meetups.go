package meetup

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/meetapp/internal/domain/meetup"
	"github.com/khoahotran/meetapp/pkg/logger"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

type ListMeetupsUseCase struct {
	meetupRepo meetup.Repository
	logger     logger.Logger
}

func NewListMeetupsUseCase(repo meetup.Repository, log logger.Logger) *ListMeetupsUseCase {
	return &ListMeetupsUseCase{meetupRepo: repo, logger: log}
}

type ListMeetupsInput struct {
	OrganizerID int64
	Page        int
	Limit       int
}

type ListMeetupsOutput struct {
	Meetups []*meetup.Meetup
	Page    int
	Limit   int
}

var tracer = otel.Tracer("meetup_usecase")

func (uc *ListMeetupsUseCase) Execute(ctx context.Context, input ListMeetupsInput) (*ListMeetupsOutput, error) {
	ctx, span := tracer.Start(ctx, "ListMeetups.Execute")
	defer span.End()

	page := max(input.Page, 1)
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)
	span.SetAttributes(attribute.Int64("organizer_id", input.OrganizerID), attribute.Int("page", page))

	meetups, err := uc.meetupRepo.ListByOrganizer(ctx, input.OrganizerID, limit, (page-1)*limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &ListMeetupsOutput{Meetups: meetups, Page: page, Limit: limit}, nil
}
