package file

import (
	"context"
	"time"
)

// File is an uploaded asset, used as user avatar or meetup banner.
// Path is the media storage public id.
type File struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	Save(ctx context.Context, f *File) error
	Update(ctx context.Context, f *File) error
	FindByID(ctx context.Context, id int64) (*File, error)
}
