package offline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
)

// document is a decoded JSON object. Handlers edit documents in place so
// that fields this package does not know about survive the round trip.
type document map[string]any

func decodeObject(p models.Payload) (document, error) {
	var d document
	if err := p.Decode(&d); err != nil || d == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", common.ErrMalformedPayload)
	}
	return d, nil
}

func decodeArray(p models.Payload) ([]any, error) {
	var a []any
	if err := p.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array", common.ErrMalformedPayload)
	}
	return a, nil
}

// key returns the stored spelling of name, matching case-insensitively, or
// name itself when absent.
func (d document) key(name string) string {
	if _, ok := d[name]; ok {
		return name
	}
	for k := range d {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return name
}

func (d document) get(name string) any { return d[d.key(name)] }

func (d document) set(name string, v any) { d[d.key(name)] = v }

// object returns the nested object under name, or nil.
func (d document) object(name string) document {
	m, _ := d.get(name).(map[string]any)
	return m
}

func (d document) array(name string) []any {
	a, _ := d.get(name).([]any)
	return a
}

func (d document) id() (int64, bool) { return toInt64(d.get("id")) }

// toInt64 converts a decoded JSON scalar to an integer.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	case float64:
		return int64(n), true
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// findByID returns the element of items whose "id" equals id.
func findByID(items []any, id int64) (document, int) {
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if got, ok := document(m).id(); ok && got == id {
			return m, i
		}
	}
	return nil, -1
}

func removeAt(items []any, i int) []any {
	return append(items[:i:i], items[i+1:]...)
}

// requestBody is the decoded JSON body of a write.
type requestBody struct {
	scalar any
	fields document
}

// decodeBody parses a request body that is either a JSON object or a bare
// scalar such as a checklist id.
func decodeBody(body []byte) (requestBody, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return requestBody{}, fmt.Errorf("%w: body is not JSON: %v", common.ErrInvalidRequest, err)
	}
	if m, ok := v.(map[string]any); ok {
		return requestBody{fields: m}, nil
	}
	return requestBody{scalar: v}, nil
}

// int64Field returns the named integer. A bare scalar body stands for any
// single id field.
func (b requestBody) int64Field(name string) (int64, error) {
	v := b.scalar
	if b.fields != nil {
		v = b.fields.get(name)
	}
	id, ok := toInt64(v)
	if !ok {
		return 0, fmt.Errorf("%w: missing or invalid %s", common.ErrInvalidRequest, name)
	}
	return id, nil
}

func (b requestBody) stringField(name string) (string, error) {
	if b.fields == nil {
		return "", fmt.Errorf("%w: expected an object body with %s", common.ErrInvalidRequest, name)
	}
	switch v := b.fields.get(name).(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(v), nil
	}
}

func (b requestBody) boolField(name string) bool {
	if b.fields == nil {
		return false
	}
	v, _ := b.fields.get(name).(bool)
	return v
}
