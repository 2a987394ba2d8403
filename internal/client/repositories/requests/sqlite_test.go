package requests

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/migrations"
	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/dmitrijs2005/mcoffline/internal/dbx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "requests.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.SQLiteDir))
	return db
}

func request(id string, ordering int64) *models.UpdateRequest {
	return &models.UpdateRequest{
		ID:          id,
		Verb:        "PUT",
		Endpoint:    "CheckList/MC/Comment?plantId=PCS$X",
		ContentType: "application/json",
		Body:        []byte(`{"CheckListId":1,"Comment":"` + id + `"}`),
		Ordering:    ordering,
		CreatedAt:   time.Unix(0, ordering).UTC(),
	}
}

func TestEnqueue_AssignsIncreasingSeq(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	ctx := context.Background()

	s1, err := r.Enqueue(ctx, request("a", 10))
	require.NoError(t, err)
	s2, err := r.Enqueue(ctx, request("b", 20))
	require.NoError(t, err)
	assert.Greater(t, s2, s1)

	got, err := r.GetBySeq(ctx, s2)
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, "PUT", got.Verb)
	assert.Equal(t, "CheckList/MC/Comment?plantId=PCS$X", got.Endpoint)
	assert.JSONEq(t, `{"CheckListId":1,"Comment":"b"}`, string(got.Body))
	assert.Equal(t, int64(20), got.Ordering)
	assert.True(t, got.CreatedAt.Equal(time.Unix(0, 20)))
	assert.Equal(t, models.RequestPending, got.Status)
}

func TestEnqueue_SameRequestTwiceKeepsBoth(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	ctx := context.Background()

	req := request("dup", 5)
	_, err := r.Enqueue(ctx, req)
	require.NoError(t, err)
	_, err = r.Enqueue(ctx, req)
	require.NoError(t, err)

	n, err := r.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListPending_OrderedByOrderingThenSeq(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	ctx := context.Background()

	for _, req := range []*models.UpdateRequest{request("late", 30), request("early", 10), request("mid", 20), request("mid2", 20)} {
		_, err := r.Enqueue(ctx, req)
		require.NoError(t, err)
	}

	pending, err := r.ListPending(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(pending))
	for _, p := range pending {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"early", "mid", "mid2", "late"}, ids)
}

func TestMarkReplayed(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	ctx := context.Background()

	seq, err := r.Enqueue(ctx, request("a", 1))
	require.NoError(t, err)
	_, err = r.Enqueue(ctx, request("b", 2))
	require.NoError(t, err)

	require.NoError(t, r.MarkReplayed(ctx, seq))
	require.ErrorIs(t, r.MarkReplayed(ctx, seq), common.ErrNotFound)
	require.ErrorIs(t, r.MarkReplayed(ctx, 999), common.ErrNotFound)

	pending, err := r.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].ID)

	got, err := r.GetBySeq(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, models.RequestReplayed, got.Status)
}

func TestGetBySeq_NotFound(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	_, err := r.GetBySeq(context.Background(), 1)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestLastOrdering(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	ctx := context.Background()

	last, err := r.LastOrdering(ctx)
	require.NoError(t, err)
	assert.Zero(t, last)

	seq, err := r.Enqueue(ctx, request("a", 40))
	require.NoError(t, err)
	_, err = r.Enqueue(ctx, request("b", 15))
	require.NoError(t, err)
	require.NoError(t, r.MarkReplayed(ctx, seq))

	// replayed rows still count
	last, err = r.LastOrdering(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(40), last)
}
