package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"dochub/internal/auth/models"
	"dochub/internal/identity"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists users in the users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, full_name, email, phone, national_id, role, password_hash, status, created_at`

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(user.ID),
		user.FullName,
		emailKey(user.Email),
		user.Phone,
		user.NationalID,
		string(user.Role),
		user.PasswordHash,
		string(user.Status),
		user.CreatedAt,
	)
	if err != nil {
		return translateInsertError(err)
	}
	return nil
}

func translateInsertError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return fmt.Errorf("insert user: %w", err)
	}
	switch pqErr.Constraint {
	case "users_email_key":
		return ErrEmailTaken
	case "users_phone_key":
		return ErrPhoneTaken
	case "users_national_id_key":
		return ErrNationalIDTaken
	default:
		return sentinel.ErrConflict
	}
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, uuid.UUID(userID))
	return scanUser(row)
}

func (s *PostgresStore) FindByIdentifier(ctx context.Context, method identity.Method, value string) (*models.User, error) {
	var query string
	switch method {
	case identity.MethodEmail:
		query = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = $1 AND email <> ''`
		value = emailKey(value)
	case identity.MethodPhone:
		query = `SELECT ` + userColumns + ` FROM users WHERE phone = $1 AND phone <> ''`
	case identity.MethodNationalID:
		query = `SELECT ` + userColumns + ` FROM users WHERE national_id = $1 AND national_id <> ''`
	default:
		return nil, sentinel.ErrNotFound
	}
	row := tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, query, strings.TrimSpace(value))
	return scanUser(row)
}

func (s *PostgresStore) List(ctx context.Context, filter ListFilter) ([]*models.User, error) {
	var (
		where []string
		args  []any
	)
	if filter.Role != "" {
		args = append(args, string(filter.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, fmt.Sprintf("(lower(full_name) LIKE $%d OR lower(email) LIKE $%d)", len(args), len(args)))
	}
	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, email`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := tx.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountByRole(ctx context.Context, role models.Role) (int, error) {
	var n int
	err := tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1 AND status = $2`,
		string(role), string(models.UserStatusActive),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID) error {
	res, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var (
		u      models.User
		userID uuid.UUID
		role   string
		status string
	)
	err := row.Scan(&userID, &u.FullName, &u.Email, &u.Phone, &u.NationalID, &role, &u.PasswordHash, &status, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(userID)
	u.Role = models.Role(role)
	u.Status = models.UserStatus(status)
	return &u, nil
}
