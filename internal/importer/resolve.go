package importer

import (
	"context"
	"log/slog"

	"github.com/vmunix/stashgrab/internal/match"
	"github.com/vmunix/stashgrab/pkg/stash"
)

// resolveEntities turns the reviewed entity sets into real catalog ids.
// Placeholder entities are created now, at import time. A failed create
// drops that entity with a warning; resolution never aborts the import,
// and no placeholder id ever reaches a record mutation.
func (i *Importer) resolveEntities(ctx context.Context, req *Request, log *slog.Logger) (performerIDs, tagIDs []string, studioID string) {
	performerIDs = i.resolveSet(ctx, req, req.Performers, i.catalog.CreatePerformer, "performer", log)
	tagIDs = i.resolveSet(ctx, req, req.Tags, i.catalog.CreateTag, "tag", log)

	if req.Studio != nil {
		if id, ok := i.resolveOne(ctx, req, *req.Studio, i.catalog.CreateStudio, "studio", log); ok {
			studioID = id
		}
	}
	return performerIDs, tagIDs, studioID
}

type createFunc func(ctx context.Context, name string) (*stash.Entity, error)

func (i *Importer) resolveSet(ctx context.Context, req *Request, entities []stash.Entity,
	create createFunc, kind string, log *slog.Logger) []string {

	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		if id, ok := i.resolveOne(ctx, req, e, create, kind, log); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (i *Importer) resolveOne(ctx context.Context, req *Request, e stash.Entity,
	create createFunc, kind string, log *slog.Logger) (string, bool) {

	if !match.IsPlaceholderID(e.ID) {
		return e.ID, e.ID != ""
	}
	created, err := create(ctx, e.Name)
	if err != nil {
		i.warn(req, log, "failed to create "+kind+", dropping from import",
			"name", e.Name, "error", err)
		return "", false
	}
	log.Info("created "+kind, "name", e.Name, "id", created.ID)
	return created.ID, true
}
