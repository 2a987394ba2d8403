package offline

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextItemNo(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "empty checklist", doc: `{}`, want: "01"},
		{
			name: "custom items win, bad numbers count as zero",
			doc:  `{"customCheckItems":[{"itemNo":"3"},{"itemNo":"7"},{"itemNo":"bad"}],"checkItems":[{"sequenceNumber":"40"}]}`,
			want: "08",
		},
		{
			name: "check items when no custom items",
			doc:  `{"checkItems":[{"sequenceNumber":"1"},{"sequenceNumber":"2"},{"sequenceNumber":"9"}]}`,
			want: "10",
		},
		{
			name: "numeric item numbers",
			doc:  `{"customCheckItems":[{"itemNo":4},{"itemNo":null}]}`,
			want: "05",
		},
		{
			name: "three digits are not truncated",
			doc:  `{"checkItems":[{"sequenceNumber":"120"}]}`,
			want: "121",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cl models.ChecklistResponse
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &cl))
			assert.Equal(t, tt.want, nextItemNo(&cl))
		})
	}
}

func TestNextCustomItemNo_FromStore(t *testing.T) {
	s := newTestStore(t)
	seedChecklist(t, s)
	repo := s.Entities(s.DB())

	resp, err := nextCustomItemNo(context.Background(), repo, url.Values{"checkListId": {"12"}})
	require.NoError(t, err)
	assert.Equal(t, common.ContentTypeJSON, resp.ContentType)
	assert.Equal(t, `"03"`, resp.Text())

	var v string
	require.NoError(t, resp.JSON(&v))
	assert.Equal(t, "03", v)
}

func TestNextCustomItemNo_NotCachedIsFirst(t *testing.T) {
	s := newTestStore(t)

	resp, err := nextCustomItemNo(context.Background(), s.Entities(s.DB()), url.Values{"checkListId": {"999"}})
	require.NoError(t, err)
	assert.Equal(t, `"01"`, resp.Text())
}

func TestNextCustomItemNo_Malformed(t *testing.T) {
	s := newTestStore(t)
	e := models.NewEntity("CheckList/MC?checklistId=5", models.JSONPayload([]byte(`{"checkItems":`)), models.EntityTypeChecklist, 5, 0)
	require.NoError(t, s.Entities(s.DB()).Put(context.Background(), e))

	_, err := nextCustomItemNo(context.Background(), s.Entities(s.DB()), url.Values{"checklistid": {"5"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMalformedPayload))
}

func TestMatchDerivedRoute(t *testing.T) {
	_, ok := matchDerivedRoute("CheckList/CustomItem/NextItemNo")
	assert.True(t, ok)
	_, ok = matchDerivedRoute("api/checklist/customitem/nextitemno")
	assert.True(t, ok)
	_, ok = matchDerivedRoute("CheckList/CustomItem")
	assert.False(t, ok)
}
