package offline

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/client/storage"
	"github.com/dmitrijs2005/mcoffline/internal/logging"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://procosys.example.com/api/"

const checklistJSON = `{
	"checkList": {"id": 12, "tagNo": "A-100", "comment": "", "signedAt": null, "extra": {"keep": true}},
	"checkItems": [
		{"id": 101, "sequenceNumber": "1", "text": "Check bolts", "isOk": false, "isNotApplicable": false},
		{"id": 102, "sequenceNumber": "2", "text": "Check paint", "isOk": false, "isNotApplicable": false}
	],
	"customCheckItems": []
}`

const checklistPath = "CheckList/MC?plantId=PCS$TROLL&checklistId=12"

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "offline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedChecklist(t *testing.T, s *storage.Store) {
	t.Helper()
	e := models.NewEntity(checklistPath, models.JSONPayload([]byte(checklistJSON)), models.EntityTypeChecklist, 12, 0)
	require.NoError(t, s.Entities(s.DB()).Put(context.Background(), e))
}

func loadDoc(t *testing.T, s *storage.Store, path string) document {
	t.Helper()
	e, err := s.Entities(s.DB()).GetByAPIPath(context.Background(), path)
	require.NoError(t, err)
	d, err := decodeObject(e.Payload)
	require.NoError(t, err)
	return d
}

func loadArray(t *testing.T, s *storage.Store, path string) []any {
	t.Helper()
	e, err := s.Entities(s.DB()).GetByAPIPath(context.Background(), path)
	require.NoError(t, err)
	a, err := decodeArray(e.Payload)
	require.NoError(t, err)
	return a
}

// newRequest builds a write the way the Fetcher does.
func newRequest(t *testing.T, method, endpoint string, body any) *models.UpdateRequest {
	t.Helper()
	op, err := JSONOptions(method, body)
	require.NoError(t, err)
	b := NewBuilder(NewNormalizer(testBaseURL))
	b.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	req, err := b.Build(op, endpoint)
	require.NoError(t, err)
	return req
}

func newTestUpdater(s *storage.Store) *Updater {
	return NewUpdater(s, "jdoe", logging.NewNopLogger())
}

// failingDoer fails the test if the network is used.
type failingDoer struct{ t *testing.T }

func (d failingDoer) Do(req *http.Request) (*http.Response, error) {
	d.t.Errorf("unexpected network call: %s %s", req.Method, req.URL)
	return nil, context.Canceled
}

// mutableStatus is a StatusSource the test can flip.
type mutableStatus struct {
	mu sync.Mutex
	s  models.OfflineStatus
}

func (m *mutableStatus) Status(context.Context) (models.OfflineStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *mutableStatus) set(s models.OfflineStatus) {
	m.mu.Lock()
	m.s = s
	m.mu.Unlock()
}
