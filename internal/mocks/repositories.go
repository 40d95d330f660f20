// Package mocks holds testify mocks for the domain repositories and services.
package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/meetapp/adapters/event"
	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/internal/domain/meetup"
	"github.com/khoahotran/meetapp/internal/domain/user"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

type FileRepository struct {
	mock.Mock
}

func (m *FileRepository) Save(ctx context.Context, f *file.File) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FileRepository) Update(ctx context.Context, f *file.File) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FileRepository) FindByID(ctx context.Context, id int64) (*file.File, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*file.File)
	return f, args.Error(1)
}

type MeetupRepository struct {
	mock.Mock
}

func (m *MeetupRepository) FindByID(ctx context.Context, id int64, organizerID int64) (*meetup.Meetup, error) {
	args := m.Called(ctx, id, organizerID)
	mt, _ := args.Get(0).(*meetup.Meetup)
	return mt, args.Error(1)
}

func (m *MeetupRepository) ListByOrganizer(ctx context.Context, organizerID int64, limit, offset int) ([]*meetup.Meetup, error) {
	args := m.Called(ctx, organizerID, limit, offset)
	list, _ := args.Get(0).([]*meetup.Meetup)
	return list, args.Error(1)
}

type Uploader struct {
	mock.Mock
}

func (m *Uploader) Upload(ctx context.Context, r io.Reader, folder string, publicID string) (string, error) {
	args := m.Called(ctx, r, folder, publicID)
	return args.String(0), args.Error(1)
}

func (m *Uploader) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func (m *Uploader) TransformURL(publicID string, transformation string) (string, error) {
	args := m.Called(publicID, transformation)
	return args.String(0), args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishFileEvent(ctx context.Context, payload event.FileEventPayload) error {
	return m.Called(ctx, payload).Error(0)
}
