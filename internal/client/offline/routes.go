package offline

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
)

type updateStyle string

const (
	// styleReplace rewrites a cached entity in place.
	styleReplace updateStyle = "replace"
	// styleAppend adds a new item that the server has not seen yet.
	styleAppend updateStyle = "append"
)

type writeHandler func(ctx context.Context, w *write) (json.RawMessage, error)

type writeRoute struct {
	verb    string
	pattern *regexp.Regexp
	style   updateStyle
	handle  writeHandler
}

// pathPattern matches an API path, ignoring case, a trailing slash and any
// prefix segments in front of it.
func pathPattern(p string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|/)` + regexp.QuoteMeta(p) + `/?$`)
}

var writeRoutes = []writeRoute{
	{"PUT", pathPattern("CheckList/MC/Comment"), styleReplace, setChecklistComment},
	{"POST", pathPattern("CheckList/MC/Sign"), styleReplace, stampChecklist("signed", true)},
	{"POST", pathPattern("CheckList/MC/Unsign"), styleReplace, stampChecklist("signed", false)},
	{"POST", pathPattern("CheckList/MC/Verify"), styleReplace, stampChecklist("verified", true)},
	{"POST", pathPattern("CheckList/MC/Unverify"), styleReplace, stampChecklist("verified", false)},

	{"POST", pathPattern("CheckList/Item/SetOk"), styleReplace, setCheckItem(true, false)},
	{"POST", pathPattern("CheckList/Item/SetNA"), styleReplace, setCheckItem(false, true)},
	{"POST", pathPattern("CheckList/Item/Clear"), styleReplace, setCheckItem(false, false)},

	{"POST", pathPattern("CheckList/CustomItem"), styleAppend, addCustomItem},
	{"DELETE", pathPattern("CheckList/CustomItem"), styleReplace, deleteCustomItem},
	{"POST", pathPattern("CheckList/CustomItem/SetOk"), styleReplace, setCustomItem(true)},
	{"POST", pathPattern("CheckList/CustomItem/Clear"), styleReplace, setCustomItem(false)},

	{"POST", pathPattern("CheckList/Attachment"), styleAppend, addChecklistAttachment},
	{"DELETE", pathPattern("CheckList/Attachment"), styleReplace, deleteChecklistAttachment},

	{"PUT", pathPattern("PunchItem/SetDescription"), styleReplace, setPunchDescription},
	{"POST", pathPattern("PunchItem/Clear"), styleReplace, punchTransition([]string{"cleared"}, []string{"rejected"})},
	{"POST", pathPattern("PunchItem/Unclear"), styleReplace, punchTransition(nil, []string{"cleared", "verified"})},
	{"POST", pathPattern("PunchItem/Verify"), styleReplace, punchTransition([]string{"verified"}, nil)},
	{"POST", pathPattern("PunchItem/Unverify"), styleReplace, punchTransition(nil, []string{"verified"})},
	{"POST", pathPattern("PunchItem/Reject"), styleReplace, punchTransition([]string{"rejected"}, []string{"cleared", "verified"})},
	{"POST", pathPattern("PunchItem/Comment"), styleAppend, addPunchComment},
}

func matchWriteRoute(routes []writeRoute, verb, path string) (writeRoute, bool) {
	for _, r := range routes {
		if strings.EqualFold(r.verb, verb) && r.pattern.MatchString(path) {
			return r, true
		}
	}
	return writeRoute{}, false
}

// entityRoute tells Prefetch how to index the response of a GET.
type entityRoute struct {
	pattern     *regexp.Regexp
	entityType  models.EntityType
	idParam     string
	parentParam string
	searchParam string
	binary      bool
}

var entityRoutes = []entityRoute{
	{pattern: pathPattern("CheckList/MC"), entityType: models.EntityTypeChecklist, idParam: "checklistId"},
	{pattern: pathPattern("CheckList/Attachments"), entityType: models.EntityTypeChecklistAttachments, parentParam: "checklistId"},
	{pattern: pathPattern("CheckList/Attachment"), entityType: models.EntityTypeChecklistAttachment, idParam: "attachmentId", parentParam: "checklistId", binary: true},
	{pattern: pathPattern("CheckList/PunchList"), entityType: models.EntityTypePunchList, parentParam: "checklistId"},
	{pattern: pathPattern("PunchItem"), entityType: models.EntityTypePunchItem, idParam: "punchItemId"},
	{pattern: pathPattern("PunchItem/Comments"), entityType: models.EntityTypePunchComments, parentParam: "punchItemId"},
	{pattern: pathPattern("PunchItem/Attachments"), entityType: models.EntityTypePunchAttachments, parentParam: "punchItemId"},
	{pattern: pathPattern("PunchItem/Attachment"), entityType: models.EntityTypePunchAttachment, idParam: "attachmentId", parentParam: "punchItemId", binary: true},
	{pattern: pathPattern("Search"), entityType: models.EntityTypeSearchResult, searchParam: "searchType"},
}

var unknownRoute = entityRoute{entityType: models.EntityTypeUnknown}

func matchEntityRoute(path string) entityRoute {
	for _, r := range entityRoutes {
		if r.pattern.MatchString(path) {
			return r
		}
	}
	return unknownRoute
}

// entity indexes payload under key according to the route.
func (r entityRoute) entity(key string, payload models.Payload) *models.Entity {
	_, q := splitKey(key)
	var id, parent int64
	if r.idParam != "" {
		id = queryID(q, r.idParam)
	}
	if r.parentParam != "" {
		parent = queryID(q, r.parentParam)
	}
	e := models.NewEntity(key, payload, r.entityType, id, parent)
	if r.searchParam != "" {
		if st, ok := models.ParseSearchType(queryParam(q, r.searchParam)); ok {
			e.SearchType = &st
		}
	}
	return e
}
