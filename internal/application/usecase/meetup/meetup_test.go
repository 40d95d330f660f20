package meetup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/meetapp/internal/domain/meetup"
	"github.com/khoahotran/meetapp/internal/mocks"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

func TestListMeetups_Paging(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", wantLimit: DefaultPageSize, wantOffset: 0},
		{name: "third page", page: 3, limit: 5, wantLimit: 5, wantOffset: 10},
		{name: "limit is capped", page: 2, limit: 500, wantLimit: MaxPageSize, wantOffset: MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MeetupRepository{}
			uc := NewListMeetupsUseCase(repo, logger.NewNopLogger())
			repo.On("ListByOrganizer", mock.Anything, int64(1), tt.wantLimit, tt.wantOffset).
				Return([]*meetup.Meetup{{ID: 1}}, nil)

			out, err := uc.Execute(context.Background(), ListMeetupsInput{OrganizerID: 1, Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)
			assert.Len(t, out.Meetups, 1)
			assert.Equal(t, tt.wantLimit, out.Limit)
			repo.AssertExpectations(t)
		})
	}
}

func TestGetMeetup_OtherOrganizer(t *testing.T) {
	repo := &mocks.MeetupRepository{}
	uc := NewGetMeetupUseCase(repo, logger.NewNopLogger())
	repo.On("FindByID", mock.Anything, int64(4), int64(2)).Return(nil, apperror.NewNotFound("meetup", "4"))

	_, err := uc.Execute(context.Background(), 4, 2)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
