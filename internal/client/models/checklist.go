package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ChecklistResponse is the part of the MC checklist document the offline
// layer reads with typed access. Updates work on the raw document so fields
// not listed here survive.
type ChecklistResponse struct {
	CheckList        ChecklistDetails  `json:"checkList"`
	CheckItems       []CheckItem       `json:"checkItems"`
	CustomCheckItems []CustomCheckItem `json:"customCheckItems"`
}

type ChecklistDetails struct {
	ID           int64  `json:"id"`
	TagNo        string `json:"tagNo"`
	FormularType string `json:"formularType"`
	Comment      string `json:"comment"`
}

type CheckItem struct {
	ID              int64      `json:"id"`
	SequenceNumber  FlexString `json:"sequenceNumber"`
	Text            string     `json:"text"`
	IsOk            bool       `json:"isOk"`
	IsNotApplicable bool       `json:"isNotApplicable"`
}

type CustomCheckItem struct {
	ID     int64      `json:"id"`
	ItemNo FlexString `json:"itemNo"`
	Text   string     `json:"text"`
	IsOk   bool       `json:"isOk"`
}

// FlexString holds a value the server sends either as a JSON string or as a
// JSON number (item and sequence numbers).
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

// Int parses the value as a base-10 integer. Anything unparsable is 0.
func (f FlexString) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(f)))
	if err != nil {
		return 0
	}
	return n
}
