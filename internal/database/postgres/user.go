package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

const userColumns = `user_id, username, email, password_hash, avatar_url, bio, github_username, is_active, created_at, updated_at`

// UserRepository implements repository.User
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.User = (*UserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AvatarURL, &u.Bio,
		&u.GithubUsername, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts the account and its zeroed progress row in one transaction
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	tx, err := begin(ctx, r.db)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id, username, email, password_hash, avatar_url, bio, github_username, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $8)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.AvatarURL, user.Bio, user.GithubUsername, user.CreatedAt)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == PgErrorCodeUniqueViolation {
			switch constraint {
			case ConstraintUsersEmail:
				return domain.ErrEmailTaken
			default:
				return domain.ErrUsernameTaken
			}
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO user_progress (user_id, updated_at) VALUES ($1, $2)`, user.ID, user.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert progress row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}
	user.IsActive = true
	user.UpdatedAt = user.CreatedAt
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// UpdateProfile sets the non-nil fields of update
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, at time.Time) (*domain.User, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET
			avatar_url = COALESCE($2, avatar_url),
			bio = COALESCE($3, bio),
			github_username = COALESCE($4, github_username),
			updated_at = $5
		WHERE user_id = $1
		RETURNING `+userColumns,
		id, update.AvatarURL, update.Bio, update.GithubUsername, at))
}
