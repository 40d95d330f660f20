package persistence

import (
	"context"
	"errors"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/internal/domain/meetup"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

type postgresMeetupRepo struct {
	db     DBTX
	logger logger.Logger
}

func NewPostgresMeetupRepo(db DBTX, logger logger.Logger) meetup.Repository {
	return &postgresMeetupRepo{db: db, logger: logger}
}

var psqlMeetup = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func selectMeetups() sq.SelectBuilder {
	return psqlMeetup.Select(
		"m.id", "m.title", "m.description", "m.location", "m.date", "m.canceled_at",
		"m.user_id", "m.banner_id", "m.created_at", "m.updated_at",
		"f.id", "f.name", "f.path", "f.url",
	).
		From("meetups m").
		LeftJoin("files f ON f.id = m.banner_id")
}

func scanMeetup(row pgx.Row) (*meetup.Meetup, error) {
	m := &meetup.Meetup{}
	var (
		bannerID               *int64
		bannerName, bannerPath *string
		bannerURL              *string
	)
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Location, &m.Date, &m.CanceledAt,
		&m.UserID, &m.BannerID, &m.CreatedAt, &m.UpdatedAt,
		&bannerID, &bannerName, &bannerPath, &bannerURL,
	)
	if err != nil {
		return nil, err
	}
	if bannerID != nil {
		m.Banner = &file.File{ID: *bannerID}
		if bannerName != nil {
			m.Banner.Name = *bannerName
		}
		if bannerPath != nil {
			m.Banner.Path = *bannerPath
		}
		if bannerURL != nil {
			m.Banner.URL = *bannerURL
		}
	}
	return m, nil
}

func (r *postgresMeetupRepo) FindByID(ctx context.Context, id int64, organizerID int64) (*meetup.Meetup, error) {
	query, args, err := selectMeetups().
		Where(sq.Eq{"m.id": id, "m.user_id": organizerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find meetup query", err)
	}

	m, err := scanMeetup(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("meetup", strconv.FormatInt(id, 10))
		}
		return nil, apperror.NewInternal("failed to query meetup", err)
	}
	return m, nil
}

func (r *postgresMeetupRepo) ListByOrganizer(ctx context.Context, organizerID int64, limit, offset int) ([]*meetup.Meetup, error) {
	query, args, err := selectMeetups().
		Where(sq.Eq{"m.user_id": organizerID}).
		OrderBy("m.date ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list meetups query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query meetups", err)
	}
	defer rows.Close()

	meetups := make([]*meetup.Meetup, 0)
	for rows.Next() {
		m, err := scanMeetup(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan meetup row", err)
		}
		meetups = append(meetups, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating meetup rows", err)
	}
	return meetups, nil
}
