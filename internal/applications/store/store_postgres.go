package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"dochub/internal/applications/models"
	"dochub/internal/catalog"
	"dochub/internal/platform/postgres"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/platform/tx"
)

const uniqueViolation = "23505"

const appColumns = `id, application_number, owner_id, service_kind, title, status,
	submitted_at, estimated_completion, required_documents, notes, updated_at`

// PostgresStore persists applications in the applications table.
type PostgresStore struct {
	db *sql.DB
	tx *postgres.TxRunner
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, tx: postgres.NewTxRunner(db)}
}

func (s *PostgresStore) Create(ctx context.Context, app *models.Application) error {
	query := `INSERT INTO applications (` + appColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(app.ID),
		app.Number,
		uuid.UUID(app.OwnerID),
		string(app.Service),
		app.Title,
		string(app.Status),
		app.SubmittedAt,
		app.EstimatedCompletion,
		pq.Array(app.RequiredDocuments),
		app.Notes,
		app.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, appID id.ApplicationID) (*models.Application, error) {
	row := tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+appColumns+` FROM applications WHERE id = $1`, uuid.UUID(appID))
	return scanApplication(row)
}

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.Application, error) {
	var (
		where []string
		args  []any
	)
	if !filter.OwnerID.IsNil() {
		args = append(args, uuid.UUID(filter.OwnerID))
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		args = append(args, pq.Array(statuses))
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(filter.Services) > 0 {
		kinds := make([]string, len(filter.Services))
		for i, k := range filter.Services {
			kinds[i] = string(k)
		}
		args = append(args, pq.Array(kinds))
		where = append(where, fmt.Sprintf("service_kind = ANY($%d)", len(args)))
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, fmt.Sprintf("(lower(application_number) LIKE $%d OR lower(title) LIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + appColumns + ` FROM applications`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY submitted_at DESC, application_number`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := tx.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// Update locks the row, applies mutate and writes it back in one transaction.
func (s *PostgresStore) Update(ctx context.Context, appID id.ApplicationID, mutate func(*models.Application) error) (*models.Application, error) {
	var result *models.Application
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, s.db)
		app, err := scanApplication(exec.QueryRowContext(ctx,
			`SELECT `+appColumns+` FROM applications WHERE id = $1 FOR UPDATE`, uuid.UUID(appID)))
		if err != nil {
			return err
		}
		if err := mutate(app); err != nil {
			return err
		}
		_, err = exec.ExecContext(ctx, `
			UPDATE applications
			SET title = $2, status = $3, notes = $4, required_documents = $5, updated_at = $6
			WHERE id = $1`,
			uuid.UUID(app.ID), app.Title, string(app.Status), app.Notes, pq.Array(app.RequiredDocuments), app.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update application: %w", err)
		}
		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresStore) Delete(ctx context.Context, appID id.ApplicationID) error {
	res, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, uuid.UUID(appID))
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error) {
	res, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, `DELETE FROM applications WHERE owner_id = $1`, uuid.UUID(ownerID))
	if err != nil {
		return 0, fmt.Errorf("delete applications: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context, ownerID id.UserID) (map[models.Status]int, error) {
	query := `SELECT status, COUNT(*) FROM applications`
	var args []any
	if !ownerID.IsNil() {
		query += ` WHERE owner_id = $1`
		args = append(args, uuid.UUID(ownerID))
	}
	query += ` GROUP BY status`

	rows, err := tx.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Status]int, len(models.Statuses))
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan application count: %w", err)
		}
		counts[models.Status(status)] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*models.Application, error) {
	var (
		app     models.Application
		appID   uuid.UUID
		ownerID uuid.UUID
		kind    string
		status  string
		docs    pq.StringArray
	)
	err := row.Scan(&appID, &app.Number, &ownerID, &kind, &app.Title, &status,
		&app.SubmittedAt, &app.EstimatedCompletion, &docs, &app.Notes, &app.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	app.ID = id.ApplicationID(appID)
	app.OwnerID = id.UserID(ownerID)
	app.Service = catalog.ServiceKind(kind)
	app.Status = models.Status(status)
	app.RequiredDocuments = []string(docs)
	return &app, nil
}
