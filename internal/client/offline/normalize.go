package offline

import (
	"net/url"
	"strconv"
	"strings"
)

// Normalizer turns endpoints into cache keys by stripping the API base URL.
// The query string is part of the key.
type Normalizer struct {
	base string
}

func NewNormalizer(baseURL string) Normalizer {
	return Normalizer{base: strings.TrimRight(baseURL, "/") + "/"}
}

// Normalize returns the cache key of endpoint. Endpoints under the base URL
// lose that prefix; other absolute URLs keep path and query only. A leading
// slash is dropped so "/CheckList/MC" and "CheckList/MC" share one key.
func (n Normalizer) Normalize(endpoint string) string {
	p := strings.TrimSpace(endpoint)
	if n.base != "/" && len(p) >= len(n.base) && strings.EqualFold(p[:len(n.base)], n.base) {
		p = p[len(n.base):]
	} else if u, err := url.Parse(p); err == nil && u.IsAbs() {
		p = u.RequestURI()
	}
	return strings.TrimLeft(p, "/")
}

// Absolute resolves a relative endpoint against the base URL. Absolute
// endpoints are returned unchanged.
func (n Normalizer) Absolute(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.IsAbs() {
		return endpoint
	}
	return n.base + strings.TrimLeft(endpoint, "/")
}

// splitKey separates a cache key into its path and query.
func splitKey(key string) (string, url.Values) {
	path, rawQuery, _ := strings.Cut(key, "?")
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		q = url.Values{}
	}
	return path, q
}

// queryParam looks a parameter up ignoring case; the API is not consistent
// about checkListId vs checklistId.
func queryParam(q url.Values, name string) string {
	if v := q.Get(name); v != "" {
		return v
	}
	for k, vs := range q {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}

// queryID parses an id parameter; missing or malformed ids are 0.
func queryID(q url.Values, name string) int64 {
	id, err := strconv.ParseInt(queryParam(q, name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
