package postgres

import (
	"context"
	"errors"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

const userColumns = `id, email, username, password_hash, phone, bio, date_of_birth, address, city, country, is_verified, created_at, updated_at`

// Create inserts a user row. It expects u.Email, u.Username and
// u.PasswordHash to be set; the store generates the id and timestamps.
// Unique violations on email/username propagate for the service to map.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if u == nil {
		return errors.New("nil user")
	}

	const q = `
		INSERT INTO users (email, username, password_hash, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_verified, created_at, updated_at;
	`

	err := TxOrDB(ctx, r.db).QueryRow(
		ctx, q, u.Email, u.Username, u.PasswordHash, u.Phone,
	).Scan(&u.ID, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)

	return err
}

// GetByEmail fetches by email (unique). Returns nil, nil when not found.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1;
	`

	return r.scanUser(TxOrDB(ctx, r.db).QueryRow(ctx, q, email))
}

// GetByID fetches by id. Returns nil, nil when not found.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;
	`

	return r.scanUser(TxOrDB(ctx, r.db).QueryRow(ctx, q, id))
}

// Update applies a partial update; nil patch fields keep the stored value.
// Email, is_verified and created_at are deliberately absent from the SET
// list. Returns nil, nil when the row does not exist.
func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, patch *models.ProfileUpdate) (*models.User, error) {
	if patch == nil {
		return r.GetByID(ctx, id)
	}

	const q = `
		UPDATE users SET
			username      = COALESCE($2, username),
			phone         = COALESCE($3, phone),
			bio           = COALESCE($4, bio),
			date_of_birth = COALESCE($5, date_of_birth),
			address       = COALESCE($6, address),
			city          = COALESCE($7, city),
			country       = COALESCE($8, country),
			updated_at    = now()
		WHERE id = $1
		RETURNING ` + userColumns + `;
	`

	return r.scanUser(TxOrDB(ctx, r.db).QueryRow(
		ctx, q, id,
		patch.Username,
		patch.Phone,
		patch.Bio,
		patch.DateOfBirth,
		patch.Address,
		patch.City,
		patch.Country,
	))
}

// SetPassword replaces the stored digest.
func (r *UserRepo) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = $2,
		    updated_at = now()
		WHERE id = $1;
	`

	tag, err := TxOrDB(ctx, r.db).Exec(ctx, q, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Phone,
		&u.Bio,
		&u.DateOfBirth,
		&u.Address,
		&u.City,
		&u.Country,
		&u.IsVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, err
	}

	return &u, nil
}
