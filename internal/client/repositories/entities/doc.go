// Package entities provides the Offline Content Repository: the local store
// of cached API resources (see models.Entity).
//
// # Indexes
//
// Entities are addressable two ways, because call sites know different keys:
// the fetch interceptor only knows the path it was asked for, while offline
// update handlers know the domain identity of what they change.
//
//   - by API path (primary key, exact match including the query string);
//   - by (entity type, entity id), unique when the id is set;
//   - by (entity type, parent id) for hierarchical lookups;
//   - by search type for entities cached from search endpoints.
//
// Put keeps the first two consistent: storing an entity whose (type, id) is
// already cached under another path removes the old row, so both lookups
// always reach the same logical object.
//
// # Dialects
//
// SQLRepository runs on SQLite (modernc.org/sqlite) and PostgreSQL (pgx).
// Queries are written with '?' placeholders and rebound by dbx.Rebind.
//
// Typical Usage
//
//	repo := entities.NewSQLRepository(db, dbx.DialectSQLite)
//	_ = repo.Put(ctx, entity)
//	e, err := repo.GetByAPIPath(ctx, "CheckList/MC?plantId=PCS$X&checklistId=12")
//	e, err = repo.GetByTypeAndID(ctx, models.EntityTypeChecklist, 12)
package entities
