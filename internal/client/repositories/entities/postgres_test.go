package entities

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/dmitrijs2005/mcoffline/internal/dbx"
)

func newPostgresRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	r := NewSQLRepository(db, dbx.DialectPostgres)
	r.now = func() time.Time { return time.UnixMilli(42) }
	return r, mock, db
}

func TestPostgres_PutUsesPositionalPlaceholders(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM entities WHERE entity_type = $1 AND entity_id = $2 AND api_path <> $3`)).
		WithArgs("Checklist", int64(12), "CheckList/MC?checklistId=12").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO entities .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\)\s+ON CONFLICT \(api_path\) DO UPDATE SET`).
		WithArgs("CheckList/MC?checklistId=12", []byte(`{"a":1}`), "json", "Checklist", int64(12), nil, nil, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := models.NewEntity("CheckList/MC?checklistId=12", models.JSONPayload([]byte(`{"a":1}`)), models.EntityTypeChecklist, 12, 0)
	if err := repo.Put(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgres_PutWithoutIDSkipsReplace(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO entities`).
		WithArgs("PunchItem/Comments?punchItemId=5", []byte(`[]`), "json", "PunchComments", nil, int64(5), nil, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := models.NewEntity("PunchItem/Comments?punchItemId=5", models.JSONPayload([]byte(`[]`)), models.EntityTypePunchComments, 0, 5)
	if err := repo.Put(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgres_PutExecError(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO entities`).WillReturnError(errors.New("db is down"))

	e := models.NewEntity("Search?q=1", models.JSONPayload([]byte(`[]`)), models.EntityTypeSearchResult, 0, 0)
	err := repo.Put(context.Background(), e)
	if err == nil || !regexp.MustCompile(`failed to upsert entity: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgres_GetByTypeAndID(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"api_path", "payload", "payload_kind", "entity_type", "entity_id", "parent_entity_id", "search_type", "updated_at"}).
		AddRow("PunchItem?punchItemId=3", []byte(`{"id":3}`), "json", "PunchItem", int64(3), nil, nil, int64(1000))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM entities WHERE entity_type = $1 AND entity_id = $2`)).
		WithArgs("PunchItem", int64(3)).
		WillReturnRows(rows)

	e, err := repo.GetByTypeAndID(context.Background(), models.EntityTypePunchItem, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.APIPath != "PunchItem?punchItemId=3" || e.EntityID == nil || *e.EntityID != 3 {
		t.Fatalf("unexpected entity: %+v", e)
	}
}

func TestPostgres_GetByAPIPathNoRows(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM entities WHERE api_path = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"api_path"}))

	_, err := repo.GetByAPIPath(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPostgres_UnknownPayloadKindIsMalformed(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"api_path", "payload", "payload_kind", "entity_type", "entity_id", "parent_entity_id", "search_type", "updated_at"}).
		AddRow("x", []byte(`<xml/>`), "xml", "Unknown", nil, nil, nil, int64(1))
	mock.ExpectQuery(`FROM entities WHERE api_path`).WillReturnRows(rows)

	_, err := repo.GetByAPIPath(context.Background(), "x")
	if !errors.Is(err, common.ErrMalformedPayload) {
		t.Fatalf("want ErrMalformedPayload, got %v", err)
	}
}
