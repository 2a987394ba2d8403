package requests

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

const requestColumns = `seq, request_id, verb, endpoint, content_type, body, ordering, created_at, status`

// SQLRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) q(query string) string {
	return dbx.Rebind(r.dialect, query)
}

func (r *SQLRepository) Enqueue(ctx context.Context, req *models.UpdateRequest) (int64, error) {
	query := `INSERT INTO update_requests
			(request_id, verb, endpoint, content_type, body, ordering, created_at, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING seq`

	var seq int64
	err := r.db.QueryRowContext(ctx, r.q(query),
		req.ID, req.Verb, req.Endpoint, req.ContentType, req.Body,
		req.Ordering, req.CreatedAt.UnixNano(), string(models.RequestPending),
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue update request: %w", err)
	}
	return seq, nil
}

func (r *SQLRepository) ListPending(ctx context.Context) ([]*models.UpdateRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		r.q(`SELECT `+requestColumns+` FROM update_requests WHERE status = ? ORDER BY ordering, seq`),
		string(models.RequestPending))
	if err != nil {
		return nil, fmt.Errorf("failed to select pending requests: %w", err)
	}
	defer rows.Close()

	var pending []*models.UpdateRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *SQLRepository) GetBySeq(ctx context.Context, seq int64) (*models.UpdateRequest, error) {
	row := r.db.QueryRowContext(ctx, r.q(`SELECT `+requestColumns+` FROM update_requests WHERE seq = ?`), seq)
	req, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("update request %d: %w", seq, err)
	}
	return req, nil
}

func (r *SQLRepository) MarkReplayed(ctx context.Context, seq int64) error {
	res, err := r.db.ExecContext(ctx,
		r.q(`UPDATE update_requests SET status = ? WHERE seq = ? AND status = ?`),
		string(models.RequestReplayed), seq, string(models.RequestPending))
	if err != nil {
		return fmt.Errorf("failed to mark request replayed: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("pending update request %d: %w", seq, common.ErrNotFound)
	}
	return nil
}

func (r *SQLRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		r.q(`SELECT COUNT(*) FROM update_requests WHERE status = ?`),
		string(models.RequestPending)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) LastOrdering(ctx context.Context) (int64, error) {
	var last int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(ordering), 0) FROM update_requests`).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("failed to read last ordering: %w", err)
	}
	return last, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (*models.UpdateRequest, error) {
	var (
		req       models.UpdateRequest
		createdAt int64
		status    string
	)
	err := s.Scan(&req.Seq, &req.ID, &req.Verb, &req.Endpoint, &req.ContentType, &req.Body,
		&req.Ordering, &createdAt, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update request scan failed: %w", err)
	}
	req.CreatedAt = time.Unix(0, createdAt).UTC()
	req.Status = models.RequestStatus(status)
	return &req, nil
}
