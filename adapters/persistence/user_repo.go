package persistence

import (
	"context"
	"errors"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/internal/domain/user"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

const usersEmailConstraint = "users_email_key"

type postgresUserRepo struct {
	db     DBTX
	logger logger.Logger
}

func NewPostgresUserRepo(db DBTX, logger logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: logger}
}

var psqlUser = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.AvatarID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, apperror.NewInternal("failed to query user by email", err)
	}
	return u, nil
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", strconv.FormatInt(id, 10))
		}
		return nil, apperror.NewInternal("failed to query user by id", err)
	}
	return u, nil
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, avatar_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.AvatarID).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, usersEmailConstraint) {
			r.logger.Warn("Email uniqueness rejected by database", zap.String("email", u.Email))
			return apperror.NewConflict("user", "email", u.Email)
		}
		return apperror.NewInternal("failed to insert user", err)
	}
	return nil
}

func (r *postgresUserRepo) Update(ctx context.Context, u *user.User) error {
	query, args, err := psqlUser.Update("users").
		Set("name", u.Name).
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Set("avatar_id", u.AvatarID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": u.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build update user query", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound("user", strconv.FormatInt(u.ID, 10))
		}
		if isUniqueViolation(err, usersEmailConstraint) {
			r.logger.Warn("Email uniqueness rejected by database", zap.Int64("user_id", u.ID), zap.String("email", u.Email))
			return apperror.NewConflict("user", "email", u.Email)
		}
		return apperror.NewInternal("failed to update user", err)
	}
	return nil
}
