package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	sharedpg "github.com/itchan-dev/shopkeeper/shared/storage/pg"
)

const userColumns = "id, email, password_hash, first_name, last_name, is_admin, activated, created_at, updated_at"

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new user. A duplicate email is reported as a conflict.
func (s *Storage) SaveUser(ctx context.Context, data domain.UserCreationData) (domain.User, error) {
	var user domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		user, err = s.saveUser(ctx, tx, data)
		return err
	})
	return user, err
}

// UserByEmail fetches a user by its (lower-cased) email.
func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	return s.userBy(ctx, s.db, "email", email)
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	return s.userBy(ctx, s.db, "id", id)
}

func (s *Storage) Users(ctx context.Context) ([]domain.User, error) {
	return s.users(ctx, s.db)
}

// SetUserFlags changes the admin and activated flags out of band. Nil flags
// are left untouched.
func (s *Storage) SetUserFlags(ctx context.Context, email domain.Email, admin, activated *bool) (domain.User, error) {
	var user domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		user, err = s.setUserFlags(ctx, tx, email, admin, activated)
		return err
	})
	return user, err
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, data domain.UserCreationData) (domain.User, error) {
	row := q.QueryRowContext(ctx, `
		INSERT INTO users(id, email, password_hash, first_name, last_name)
		VALUES($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		uuid.New(), data.Email, data.PassHash, data.FirstName, data.LastName,
	)
	user, err := scanUser(row)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return domain.User{}, internal_errors.Conflict("User with this email already exists")
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// column is never user input.
func (s *Storage) userBy(ctx context.Context, q Querier, column string, value any) (domain.User, error) {
	row := q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) users(ctx context.Context, q Querier) ([]domain.User, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (s *Storage) setUserFlags(ctx context.Context, q Querier, email domain.Email, admin, activated *bool) (domain.User, error) {
	row := q.QueryRowContext(ctx, `
		UPDATE users SET
			is_admin = COALESCE($2, is_admin),
			activated = COALESCE($3, activated),
			updated_at = now()
		WHERE email = $1
		RETURNING `+userColumns,
		email, admin, activated,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to update user flags: %w", err)
	}
	return user, nil
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.Id, &u.Email, &u.PassHash, &u.FirstName, &u.LastName, &u.Admin, &u.Activated, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
