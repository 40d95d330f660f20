package persistence

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/khoahotran/meetapp/internal/domain/file"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

type postgresFileRepo struct {
	db     DBTX
	logger logger.Logger
}

func NewPostgresFileRepo(db DBTX, logger logger.Logger) file.Repository {
	return &postgresFileRepo{db: db, logger: logger}
}

func (r *postgresFileRepo) Save(ctx context.Context, f *file.File) error {
	query := `
		INSERT INTO files (name, path, url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, f.Name, f.Path, f.URL).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperror.NewConflict("file", "path", f.Path)
		}
		return apperror.NewInternal("failed to save file", err)
	}
	return nil
}

func (r *postgresFileRepo) Update(ctx context.Context, f *file.File) error {
	query := `
		UPDATE files SET name = $2, path = $3, url = $4, updated_at = NOW()
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, f.ID, f.Name, f.Path, f.URL)
	if err != nil {
		return apperror.NewInternal("failed to update file", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("file", strconv.FormatInt(f.ID, 10))
	}
	return nil
}

func (r *postgresFileRepo) FindByID(ctx context.Context, id int64) (*file.File, error) {
	query := `SELECT id, name, path, url, created_at, updated_at FROM files WHERE id = $1`

	f := &file.File{}
	err := r.db.QueryRow(ctx, query, id).Scan(&f.ID, &f.Name, &f.Path, &f.URL, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("file", strconv.FormatInt(id, 10))
		}
		return nil, apperror.NewInternal("failed to query file", err)
	}
	return f, nil
}
