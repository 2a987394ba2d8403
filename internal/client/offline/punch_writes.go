package offline

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
)

func setPunchDescription(ctx context.Context, w *write) (json.RawMessage, error) {
	b, err := w.body()
	if err != nil {
		return nil, err
	}
	id, err := b.int64Field("PunchItemId")
	if err != nil {
		return nil, err
	}
	desc, err := b.stringField("Description")
	if err != nil {
		return nil, err
	}

	return nil, w.editObject(ctx, models.EntityTypePunchItem, id, func(d document) error {
		d.set("description", desc)
		return nil
	})
}

// punchTransition stamps the fields in set and erases those in clear, e.g.
// Clear stamps "cleared" and erases "rejected".
func punchTransition(set, clear []string) writeHandler {
	return func(ctx context.Context, w *write) (json.RawMessage, error) {
		b, err := w.body()
		if err != nil {
			return nil, err
		}
		id, err := b.int64Field("PunchItemId")
		if err != nil {
			return nil, err
		}

		return nil, w.editObject(ctx, models.EntityTypePunchItem, id, func(d document) error {
			for _, f := range clear {
				w.stamp(d, f, false)
			}
			for _, f := range set {
				w.stamp(d, f, true)
			}
			return nil
		})
	}
}

func addPunchComment(ctx context.Context, w *write) (json.RawMessage, error) {
	b, err := w.body()
	if err != nil {
		return nil, err
	}
	punchID, err := b.int64Field("PunchItemId")
	if err != nil {
		return nil, err
	}
	text, err := b.stringField("Text")
	if err != nil {
		return nil, err
	}

	id := w.tempID()
	err = w.editChildList(ctx, models.EntityTypePunchComments, punchID, func(items []any) ([]any, error) {
		return append(items, map[string]any{
			"id":        id,
			"text":      text,
			"createdAt": w.timestamp(),
			"createdBy": w.user,
		}), nil
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(strconv.FormatInt(id, 10)), nil
}
