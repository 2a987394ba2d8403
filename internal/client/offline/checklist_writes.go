package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
)

// checklistHeader returns the "checkList" object of a cached checklist.
func checklistHeader(d document) (document, error) {
	h := d.object("checkList")
	if h == nil {
		return nil, fmt.Errorf("%w: checklist without checkList object", common.ErrMalformedPayload)
	}
	return h, nil
}

func setChecklistComment(ctx context.Context, w *write) (json.RawMessage, error) {
	b, err := w.body()
	if err != nil {
		return nil, err
	}
	id, err := b.int64Field("CheckListId")
	if err != nil {
		return nil, err
	}
	comment, err := b.stringField("Comment")
	if err != nil {
		return nil, err
	}

	return nil, w.editObject(ctx, models.EntityTypeChecklist, id, func(d document) error {
		h, err := checklistHeader(d)
		if err != nil {
			return err
		}
		h.set("comment", comment)
		return nil
	})
}

// stampChecklist sets or clears the <field>At / <field>ByUser pair of the
// checklist header.
func stampChecklist(field string, set bool) writeHandler {
	return func(ctx context.Context, w *write) (json.RawMessage, error) {
		b, err := w.body()
		if err != nil {
			return nil, err
		}
		id, err := b.int64Field("CheckListId")
		if err != nil {
			return nil, err
		}

		return nil, w.editObject(ctx, models.EntityTypeChecklist, id, func(d document) error {
			h, err := checklistHeader(d)
			if err != nil {
				return err
			}
			w.stamp(h, field, set)
			return nil
		})
	}
}

// stamp records (or erases) who did field and when.
func (w *write) stamp(d document, field string, set bool) {
	if set {
		d.set(field+"At", w.timestamp())
		d.set(field+"ByUser", w.user)
		return
	}
	d.set(field+"At", nil)
	d.set(field+"ByUser", nil)
}

func setCheckItem(isOk, isNA bool) writeHandler {
	return func(ctx context.Context, w *write) (json.RawMessage, error) {
		b, err := w.body()
		if err != nil {
			return nil, err
		}
		checklistID, err := b.int64Field("CheckListId")
		if err != nil {
			return nil, err
		}
		itemID, err := b.int64Field("CheckItemId")
		if err != nil {
			return nil, err
		}

		return nil, w.editObject(ctx, models.EntityTypeChecklist, checklistID, func(d document) error {
			item, _ := findByID(d.array("checkItems"), itemID)
			if item == nil {
				return fmt.Errorf("%w: check item %d of checklist %d", common.ErrEntityNotCached, itemID, checklistID)
			}
			item.set("isOk", isOk)
			item.set("isNotApplicable", isNA)
			return nil
		})
	}
}

func addCustomItem(ctx context.Context, w *write) (json.RawMessage, error) {
	b, err := w.body()
	if err != nil {
		return nil, err
	}
	checklistID, err := b.int64Field("CheckListId")
	if err != nil {
		return nil, err
	}
	itemNo, err := b.stringField("ItemNo")
	if err != nil {
		return nil, err
	}
	text, err := b.stringField("Text")
	if err != nil {
		return nil, err
	}

	id := w.tempID()
	err = w.editObject(ctx, models.EntityTypeChecklist, checklistID, func(d document) error {
		items := append(d.array("customCheckItems"), map[string]any{
			"id":     id,
			"itemNo": itemNo,
			"text":   text,
			"isOk":   b.boolField("IsOk"),
		})
		d.set("customCheckItems", items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(strconv.FormatInt(id, 10)), nil
}

func deleteCustomItem(ctx context.Context, w *write) (json.RawMessage, error) {
	b, err := w.body()
	if err != nil {
		return nil, err
	}
	checklistID, err := b.int64Field("CheckListId")
	if err != nil {
		return nil, err
	}
	itemID, err := b.int64Field("CustomCheckItemId")
	if err != nil {
		return nil, err
	}

	return nil, w.editObject(ctx, models.EntityTypeChecklist, checklistID, func(d document) error {
		items := d.array("customCheckItems")
		if _, i := findByID(items, itemID); i >= 0 {
			d.set("customCheckItems", removeAt(items, i))
		}
		return nil
	})
}

func setCustomItem(isOk bool) writeHandler {
	return func(ctx context.Context, w *write) (json.RawMessage, error) {
		b, err := w.body()
		if err != nil {
			return nil, err
		}
		checklistID, err := b.int64Field("CheckListId")
		if err != nil {
			return nil, err
		}
		itemID, err := b.int64Field("CustomCheckItemId")
		if err != nil {
			return nil, err
		}

		return nil, w.editObject(ctx, models.EntityTypeChecklist, checklistID, func(d document) error {
			item, _ := findByID(d.array("customCheckItems"), itemID)
			if item == nil {
				return fmt.Errorf("%w: custom item %d of checklist %d", common.ErrEntityNotCached, itemID, checklistID)
			}
			item.set("isOk", isOk)
			return nil
		})
	}
}

// checklistAttachmentPath is the cache key a GET of the attachment blob uses.
func checklistAttachmentPath(checklistID, attachmentID int64) string {
	return fmt.Sprintf("CheckList/Attachment?checkListId=%d&attachmentId=%d", checklistID, attachmentID)
}

// addChecklistAttachment handles an upload: the checklist id and title come
// from the query, the file is the body.
func addChecklistAttachment(ctx context.Context, w *write) (json.RawMessage, error) {
	checklistID := queryID(w.query, "checkListId")
	if checklistID == 0 {
		return nil, fmt.Errorf("%w: missing checkListId", common.ErrInvalidRequest)
	}
	title := queryParam(w.query, "title")
	id := w.tempID()

	err := w.editChildList(ctx, models.EntityTypeChecklistAttachments, checklistID, func(items []any) ([]any, error) {
		return append(items, map[string]any{
			"id":       id,
			"title":    title,
			"fileName": title,
			"mimeType": w.req.ContentType,
			"hasFile":  true,
		}), nil
	})
	if err != nil {
		return nil, err
	}

	blob := models.NewEntity(
		checklistAttachmentPath(checklistID, id),
		models.BinaryPayload(w.req.Body),
		models.EntityTypeChecklistAttachment,
		id, checklistID,
	)
	if err := w.repo.Put(ctx, blob); err != nil {
		return nil, err
	}
	return json.RawMessage(strconv.FormatInt(id, 10)), nil
}

func deleteChecklistAttachment(ctx context.Context, w *write) (json.RawMessage, error) {
	b, err := w.body()
	if err != nil {
		return nil, err
	}
	checklistID, err := b.int64Field("CheckListId")
	if err != nil {
		return nil, err
	}
	attachmentID, err := b.int64Field("AttachmentId")
	if err != nil {
		return nil, err
	}

	err = w.editChildList(ctx, models.EntityTypeChecklistAttachments, checklistID, func(items []any) ([]any, error) {
		if _, i := findByID(items, attachmentID); i >= 0 {
			return removeAt(items, i), nil
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return nil, w.drop(ctx, models.EntityTypeChecklistAttachment, attachmentID)
}

// drop deletes the cached entity of the given identity, if any.
func (w *write) drop(ctx context.Context, t models.EntityType, id int64) error {
	e, err := w.repo.GetByTypeAndID(ctx, t, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	return w.repo.DeleteByAPIPath(ctx, e.APIPath)
}
