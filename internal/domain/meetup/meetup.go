package meetup

import (
	"context"
	"time"

	"github.com/khoahotran/meetapp/internal/domain/file"
)

type Meetup struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Date        time.Time  `json:"date"`
	CanceledAt  *time.Time `json:"canceled_at"`
	UserID      int64      `json:"user_id"`
	BannerID    *int64     `json:"banner_id"`
	Banner      *file.File `json:"banner"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Past and Canceled are derived at read time and never stored.

func (m *Meetup) Past(now time.Time) bool {
	return m.Date.Before(now)
}

func (m *Meetup) Canceled() bool {
	return m.CanceledAt != nil
}

type Repository interface {
	FindByID(ctx context.Context, id int64, organizerID int64) (*Meetup, error)
	ListByOrganizer(ctx context.Context, organizerID int64, limit, offset int) ([]*Meetup, error)
}
