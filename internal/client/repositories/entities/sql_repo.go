package entities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/dmitrijs2005/mcoffline/internal/dbx"
)

const entityColumns = `api_path, payload, payload_kind, entity_type, entity_id, parent_entity_id, search_type, updated_at`

// SQLRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	now     func() time.Time
}

// NewSQLRepository returns a SQLRepository bound to db.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect, now: time.Now}
}

func (r *SQLRepository) q(query string) string {
	return dbx.Rebind(r.dialect, query)
}

func (r *SQLRepository) GetByAPIPath(ctx context.Context, path string) (*models.Entity, error) {
	row := r.db.QueryRowContext(ctx, r.q(`SELECT `+entityColumns+` FROM entities WHERE api_path = ?`), path)
	e, err := scanEntity(row)
	if err != nil {
		return nil, fmt.Errorf("entity at %q: %w", path, err)
	}
	return e, nil
}

func (r *SQLRepository) GetByTypeAndID(ctx context.Context, entityType models.EntityType, id int64) (*models.Entity, error) {
	row := r.db.QueryRowContext(ctx,
		r.q(`SELECT `+entityColumns+` FROM entities WHERE entity_type = ? AND entity_id = ?`),
		string(entityType), id)
	e, err := scanEntity(row)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", entityType, id, err)
	}
	return e, nil
}

func (r *SQLRepository) GetByParent(ctx context.Context, entityType models.EntityType, parentID int64) (*models.Entity, error) {
	row := r.db.QueryRowContext(ctx,
		r.q(`SELECT `+entityColumns+` FROM entities
			WHERE entity_type = ? AND parent_entity_id = ?
			ORDER BY updated_at DESC LIMIT 1`),
		string(entityType), parentID)
	e, err := scanEntity(row)
	if err != nil {
		return nil, fmt.Errorf("%s of parent %d: %w", entityType, parentID, err)
	}
	return e, nil
}

func (r *SQLRepository) ListBySearchType(ctx context.Context, searchType models.SearchType) ([]*models.Entity, error) {
	rows, err := r.db.QueryContext(ctx,
		r.q(`SELECT `+entityColumns+` FROM entities WHERE search_type = ? ORDER BY api_path`),
		string(searchType))
	if err != nil {
		return nil, fmt.Errorf("failed to select entities: %w", err)
	}
	defer rows.Close()

	var result []*models.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Put upserts e by path. A row holding the same (type, id) under a different
// path is deleted first, so the (type, id) index never points at a stale copy.
// Run it inside dbx.WithTx when both statements must commit together.
func (r *SQLRepository) Put(ctx context.Context, e *models.Entity) error {
	if e.APIPath == "" {
		return fmt.Errorf("entity without api path: %w", common.ErrInvalidRequest)
	}

	if e.EntityID != nil {
		_, err := r.db.ExecContext(ctx,
			r.q(`DELETE FROM entities WHERE entity_type = ? AND entity_id = ? AND api_path <> ?`),
			string(e.EntityType), *e.EntityID, e.APIPath)
		if err != nil {
			return fmt.Errorf("failed to replace entity: %w", err)
		}
	}

	query := `INSERT INTO entities (` + entityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (api_path) DO UPDATE SET
			payload = excluded.payload,
			payload_kind = excluded.payload_kind,
			entity_type = excluded.entity_type,
			entity_id = excluded.entity_id,
			parent_entity_id = excluded.parent_entity_id,
			search_type = excluded.search_type,
			updated_at = excluded.updated_at`

	var searchType any
	if e.SearchType != nil {
		searchType = string(*e.SearchType)
	}

	payload := e.Payload.Bytes()
	if payload == nil {
		payload = []byte{}
	}

	_, err := r.db.ExecContext(ctx, r.q(query),
		e.APIPath,
		payload,
		string(e.Payload.Kind()),
		string(e.EntityType),
		nullInt(e.EntityID),
		nullInt(e.ParentEntityID),
		searchType,
		r.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entity: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteByAPIPath(ctx context.Context, path string) error {
	_, err := r.db.ExecContext(ctx, r.q(`DELETE FROM entities WHERE api_path = ?`), path)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	return nil
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(s scanner) (*models.Entity, error) {
	var (
		e          models.Entity
		payload    []byte
		kind       string
		entityType string
		id         sql.NullInt64
		parent     sql.NullInt64
		searchType sql.NullString
		updatedAt  int64
	)

	err := s.Scan(&e.APIPath, &payload, &kind, &entityType, &id, &parent, &searchType, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("entity scan failed: %w", err)
	}

	e.Payload, err = models.RestorePayload(models.PayloadKind(kind), payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	e.EntityType = models.EntityType(entityType)
	if id.Valid {
		e.EntityID = models.Int64Ptr(id.Int64)
	}
	if parent.Valid {
		e.ParentEntityID = models.Int64Ptr(parent.Int64)
	}
	if searchType.Valid {
		st := models.SearchType(searchType.String)
		e.SearchType = &st
	}
	e.UpdatedAt = time.UnixMilli(updatedAt)
	return &e, nil
}

func nullInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
