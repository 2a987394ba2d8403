// Package models defines the client-side data model of the offline layer:
// cached entities, their payloads, queued update requests and the offline
// status flag.
package models

import "time"

// EntityType tags a cached resource with its domain kind.
type EntityType string

const (
	EntityTypeChecklist            EntityType = "Checklist"
	EntityTypeChecklistAttachments EntityType = "ChecklistAttachments"
	EntityTypeChecklistAttachment  EntityType = "ChecklistAttachment"
	EntityTypePunchList            EntityType = "PunchList"
	EntityTypePunchItem            EntityType = "PunchItem"
	EntityTypePunchComments        EntityType = "PunchComments"
	EntityTypePunchAttachments     EntityType = "PunchAttachments"
	EntityTypePunchAttachment      EntityType = "PunchAttachment"
	EntityTypeSearchResult         EntityType = "SearchResult"
	EntityTypeUnknown              EntityType = "Unknown"
)

// SearchType classifies entities cached from search endpoints.
type SearchType string

const (
	SearchTypePO  SearchType = "PO"
	SearchTypeMC  SearchType = "MC"
	SearchTypeWO  SearchType = "WO"
	SearchTypeTag SearchType = "Tag"
)

// ParseSearchType returns the SearchType for s and whether s names one.
func ParseSearchType(s string) (SearchType, bool) {
	switch SearchType(s) {
	case SearchTypePO, SearchTypeMC, SearchTypeWO, SearchTypeTag:
		return SearchType(s), true
	}
	return "", false
}

// Entity is one cached API resource.
//
// APIPath is unique among cached entities, and so is (EntityType, EntityID)
// when EntityID is set. Entities are stored as whole values: an update
// writes a replacement, never a partial row.
type Entity struct {
	// APIPath is the normalized endpoint (base URL stripped, query kept).
	APIPath string

	Payload Payload

	EntityType EntityType

	EntityID       *int64
	ParentEntityID *int64

	SearchType *SearchType

	// UpdatedAt is set by the repository when the entity is stored.
	UpdatedAt time.Time
}

// NewEntity is a convenience constructor; zero ids mean "not set".
func NewEntity(apiPath string, payload Payload, entityType EntityType, entityID, parentID int64) *Entity {
	e := &Entity{APIPath: apiPath, Payload: payload, EntityType: entityType}
	if entityID != 0 {
		e.EntityID = Int64Ptr(entityID)
	}
	if parentID != 0 {
		e.ParentEntityID = Int64Ptr(parentID)
	}
	return e
}

// WithPayload returns a copy of e carrying p. The receiver is not modified.
func (e *Entity) WithPayload(p Payload) *Entity {
	c := *e
	c.Payload = p
	return &c
}

func Int64Ptr(v int64) *int64 { return &v }
