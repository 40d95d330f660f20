package http

import (
	"time"

	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/internal/domain/meetup"
)

// File DTOs
type FileDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

func ToFileDTO(f *file.File) FileDTO {
	return FileDTO{ID: f.ID, Name: f.Name, Path: f.Path, URL: f.URL}
}

// Meetup DTOs
type MeetupDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Date        time.Time  `json:"date"`
	CanceledAt  *time.Time `json:"canceled_at"`
	UserID      int64      `json:"user_id"`
	Banner      *FileDTO   `json:"banner"`
	Past        bool       `json:"past"`
	Canceled    bool       `json:"canceled"`
}

// ToMeetupDTO evaluates the derived flags against now.
func ToMeetupDTO(m *meetup.Meetup, now time.Time) MeetupDTO {
	dto := MeetupDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Date:        m.Date,
		CanceledAt:  m.CanceledAt,
		UserID:      m.UserID,
		Past:        m.Past(now),
		Canceled:    m.Canceled(),
	}
	if m.Banner != nil {
		banner := ToFileDTO(m.Banner)
		dto.Banner = &banner
	}
	return dto
}
