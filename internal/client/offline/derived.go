package offline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/entities"
	"github.com/dmitrijs2005/mcoffline/internal/common"
)

// derivedRoute answers a GET offline by computing the result from cached
// entities instead of looking the path up.
type derivedRoute struct {
	pattern *regexp.Regexp
	handle  func(ctx context.Context, repo entities.Repository, query url.Values) (*Response, error)
}

var derivedRoutes = []derivedRoute{
	{pattern: pathPattern("CheckList/CustomItem/NextItemNo"), handle: nextCustomItemNo},
}

func matchDerivedRoute(path string) (derivedRoute, bool) {
	for _, r := range derivedRoutes {
		if r.pattern.MatchString(path) {
			return r, true
		}
	}
	return derivedRoute{}, false
}

// nextCustomItemNo suggests the item number of a new custom check item as a
// JSON string such as "08". A checklist that is not cached counts as empty.
func nextCustomItemNo(ctx context.Context, repo entities.Repository, query url.Values) (*Response, error) {
	var cl models.ChecklistResponse

	e, err := repo.GetByTypeAndID(ctx, models.EntityTypeChecklist, queryID(query, "checkListId"))
	switch {
	case errors.Is(err, common.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if err := e.Payload.Decode(&cl); err != nil {
			return nil, fmt.Errorf("checklist %q: %w", e.APIPath, common.ErrMalformedPayload)
		}
	}

	return jsonResponse([]byte(fmt.Sprintf("%q", nextItemNo(&cl)))), nil
}

// nextItemNo is one past the highest custom item number, or past the highest
// check item sequence number when there are no custom items. Numbers that do
// not parse count as 0.
func nextItemNo(cl *models.ChecklistResponse) string {
	highest := 0
	if len(cl.CustomCheckItems) > 0 {
		for _, it := range cl.CustomCheckItems {
			highest = max(highest, it.ItemNo.Int())
		}
	} else {
		for _, it := range cl.CheckItems {
			highest = max(highest, it.SequenceNumber.Int())
		}
	}
	return fmt.Sprintf("%02d", highest+1)
}
