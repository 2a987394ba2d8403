package offline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
)

// Response is the result of a fetch, whether it came from the network or
// from the offline store. Callers parse it the same way in both cases.
type Response struct {
	StatusCode  int
	ContentType string
	Header      http.Header

	body []byte
}

func newResponse(status int, contentType string, body []byte) *Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	h.Set("Content-Length", strconv.Itoa(len(body)))
	return &Response{StatusCode: status, ContentType: contentType, Header: h, body: body}
}

// jsonResponse is a 200 carrying raw JSON.
func jsonResponse(raw []byte) *Response {
	return newResponse(http.StatusOK, common.ContentTypeJSON, raw)
}

// emptyResponse is a 200 with no body, used for offline writes that return
// nothing.
func emptyResponse() *Response {
	return newResponse(http.StatusOK, "", nil)
}

// entityResponse renders a cached entity. JSON payloads must still be valid
// JSON; anything else was corrupted in storage.
func entityResponse(e *models.Entity) (*Response, error) {
	p := e.Payload
	if p.IsBinary() {
		return newResponse(http.StatusOK, common.ContentTypeBinary, bytes.Clone(p.Bytes())), nil
	}
	if !p.Valid() {
		return nil, fmt.Errorf("cached entity %q: %w", e.APIPath, common.ErrMalformedPayload)
	}
	return jsonResponse(bytes.Clone(p.Bytes())), nil
}

// readResponse drains and closes a network response.
func readResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header.Clone(),
		body:        body,
	}, nil
}

// OK reports a 2xx status.
func (r *Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// Blob returns the raw body.
func (r *Response) Blob() []byte { return r.body }

// Text returns the body as a string.
func (r *Response) Text() string { return string(r.body) }

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if len(r.body) == 0 {
		return io.EOF
	}
	return json.Unmarshal(r.body, v)
}
