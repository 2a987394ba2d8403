package offline

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(NewNormalizer(testBaseURL))
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	b.now = func() time.Time { return at }
	b.newID = func() string { return "req-1" }

	op, err := JSONOptions("put", map[string]any{"CheckListId": 12, "Comment": "ok"})
	require.NoError(t, err)

	req, err := b.Build(op, testBaseURL+"CheckList/MC/Comment?plantId=P")
	require.NoError(t, err)

	assert.Equal(t, "req-1", req.ID)
	assert.Equal(t, http.MethodPut, req.Verb)
	assert.Equal(t, "CheckList/MC/Comment?plantId=P", req.Endpoint)
	assert.Equal(t, common.ContentTypeJSON, req.ContentType)
	assert.JSONEq(t, `{"CheckListId":12,"Comment":"ok"}`, string(req.Body))
	assert.Equal(t, at, req.CreatedAt)
	assert.Equal(t, at.UnixNano(), req.Ordering)
	assert.Equal(t, models.RequestPending, req.Status)
}

func TestBuilder_RejectsReads(t *testing.T) {
	b := NewBuilder(NewNormalizer(testBaseURL))
	for _, m := range []string{"GET", "", "HEAD"} {
		_, err := b.Build(FetchOptions{Method: m}, "CheckList/MC")
		require.Error(t, err, m)
		assert.True(t, errors.Is(err, common.ErrInvalidRequest))
	}
}

func TestBuilder_OrderingStrictlyIncreases(t *testing.T) {
	b := NewBuilder(NewNormalizer(testBaseURL))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	first, err := b.Build(FetchOptions{Method: "POST"}, "PunchItem/Clear")
	require.NoError(t, err)

	// clock stalls, then steps back
	second, err := b.Build(FetchOptions{Method: "POST"}, "PunchItem/Clear")
	require.NoError(t, err)
	now = now.Add(-time.Hour)
	third, err := b.Build(FetchOptions{Method: "POST"}, "PunchItem/Clear")
	require.NoError(t, err)

	assert.Less(t, first.Ordering, second.Ordering)
	assert.Less(t, second.Ordering, third.Ordering)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBuilder_ContentTypeFallback(t *testing.T) {
	b := NewBuilder(NewNormalizer(testBaseURL))

	req, err := b.Build(FetchOptions{Method: "POST", Body: []byte{0x89, 'P', 'N', 'G'}}, "CheckList/Attachment?checkListId=1")
	require.NoError(t, err)
	assert.Equal(t, common.ContentTypeBinary, req.ContentType)

	h := http.Header{}
	h.Set("Content-Type", "image/png")
	req, err = b.Build(FetchOptions{Method: "POST", Header: h, Body: []byte("x")}, "CheckList/Attachment?checkListId=1")
	require.NoError(t, err)
	assert.Equal(t, "image/png", req.ContentType)

	req, err = b.Build(FetchOptions{Method: "POST"}, "PunchItem/Clear")
	require.NoError(t, err)
	assert.Empty(t, req.ContentType)
}
