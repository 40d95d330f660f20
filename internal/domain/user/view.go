package user

import "github.com/khoahotran/meetapp/internal/domain/file"

// Avatar is the public part of a user's avatar file.
type Avatar struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// View is what leaves the service for a user. It never carries password material.
type View struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *Avatar `json:"avatar"`
}

func NewView(u *User, avatar *file.File) *View {
	v := &View{ID: u.ID, Name: u.Name, Email: u.Email}
	if avatar != nil {
		v.Avatar = &Avatar{Name: avatar.Name, Path: avatar.Path, URL: avatar.URL}
	}
	return v
}
