package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"dochub/internal/documents/models"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/platform/tx"
)

const docColumns = `id, owner_id, application_id, name, content_type, type, size_bytes, uploaded_at`

// PostgresStore persists document metadata in the documents table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, doc *models.Document) error {
	_, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx,
		`INSERT INTO documents (`+docColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(doc.ID),
		uuid.UUID(doc.OwnerID),
		nullableApp(doc.ApplicationID),
		doc.Name,
		doc.ContentType,
		doc.Type,
		doc.SizeBytes,
		doc.UploadedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, docID id.DocumentID) (*models.Document, error) {
	row := tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+docColumns+` FROM documents WHERE id = $1`, uuid.UUID(docID))
	return scanDocument(row)
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.Document, error) {
	rows, err := tx.ExecutorFrom(ctx, s.db).QueryContext(ctx,
		`SELECT `+docColumns+` FROM documents WHERE owner_id = $1 ORDER BY uploaded_at DESC, name`,
		uuid.UUID(ownerID))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountByOwner(ctx context.Context, ownerID id.UserID) (int, error) {
	var n int
	err := tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE owner_id = $1`, uuid.UUID(ownerID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Delete(ctx context.Context, docID id.DocumentID) error {
	res, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, uuid.UUID(docID))
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error) {
	res, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, `DELETE FROM documents WHERE owner_id = $1`, uuid.UUID(ownerID))
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// DetachApplication clears application_id on documents linked to appID.
func (s *PostgresStore) DetachApplication(ctx context.Context, appID id.ApplicationID) error {
	_, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx,
		`UPDATE documents SET application_id = NULL WHERE application_id = $1`, uuid.UUID(appID))
	if err != nil {
		return fmt.Errorf("detach documents: %w", err)
	}
	return nil
}

func nullableApp(appID id.ApplicationID) *uuid.UUID {
	if appID.IsNil() {
		return nil
	}
	u := uuid.UUID(appID)
	return &u
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*models.Document, error) {
	var (
		doc     models.Document
		docID   uuid.UUID
		ownerID uuid.UUID
		appID   uuid.NullUUID
	)
	err := row.Scan(&docID, &ownerID, &appID, &doc.Name, &doc.ContentType, &doc.Type, &doc.SizeBytes, &doc.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	doc.ID = id.DocumentID(docID)
	doc.OwnerID = id.UserID(ownerID)
	if appID.Valid {
		doc.ApplicationID = id.ApplicationID(appID.UUID)
	}
	return &doc, nil
}
