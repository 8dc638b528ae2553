package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/travelbook/flightbooking/internal/domain"
)

const uniqueViolation = "23505"

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, id int64, upd domain.UserUpdate) (domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, avatar_url, created_at`

func (r *PGUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns, user.Username, user.Email, user.PasswordHash, user.AvatarURL)
	return scanUser(row)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *PGUserRepository) Update(ctx context.Context, id int64, upd domain.UserUpdate) (domain.User, error) {
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}
	query, args := buildUserUpdate(id, upd)
	return scanUser(r.db.QueryRow(ctx, query, args...))
}

// buildUserUpdate renders an UPDATE touching only the non-nil fields of upd.
func buildUserUpdate(id int64, upd domain.UserUpdate) (string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	add("username", upd.Username)
	add("email", upd.Email)
	add("password_hash", upd.PasswordHash)
	add("avatar_url", upd.AvatarURL)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id=$%d RETURNING %s`, strings.Join(sets, ", "), len(args), userColumns)
	return query, args
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AvatarURL, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrConflict
		}
		return domain.User{}, err
	}
	return u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
