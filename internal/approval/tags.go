package approval

import (
	"context"
	"errors"
	"fmt"

	"toolhub/internal/db"
	"toolhub/internal/models"
)

// ResolveTags maps normalized tag names to existing-or-newly-created Tag
// records. A uniqueness conflict on insert means another writer created the
// tag concurrently; the row is re-fetched instead of failing. Names that
// cannot be resolved end up in the failure list, never as an error.
func (w *Workflow) ResolveTags(ctx context.Context, names []string) (map[string]models.Tag, []TagFailure) {
	tags := make(map[string]models.Tag, len(names))
	var failures []TagFailure

	for _, name := range names {
		tag, err := w.resolveTag(ctx, name)
		if err != nil {
			failures = append(failures, TagFailure{Name: name, Error: err.Error()})
			continue
		}
		tags[name] = *tag
	}
	return tags, failures
}

func (w *Workflow) resolveTag(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := w.store.GetTagByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, db.ErrTagNotFound) {
		return nil, err
	}

	tag = &models.Tag{Name: name}
	err = w.store.CreateTag(ctx, tag)
	if errors.Is(err, db.ErrDuplicateTagName) {
		// Someone else created it between our lookup and insert.
		return w.store.GetTagByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// LinkTags associates resolved tags with a tool, best-effort per tag: an
// already-linked pair counts as AlreadyLinked, and any other failure is
// recorded without aborting the remaining tags.
func (w *Workflow) LinkTags(ctx context.Context, tool *models.Tool, names []string, tags map[string]models.Tag) LinkReport {
	var report LinkReport
	for _, name := range names {
		tag, ok := tags[name]
		if !ok {
			continue // resolution failed; already reported
		}

		inserted, err := w.store.LinkToolTag(ctx, tool.ID, tag.ID)
		if err != nil {
			report.Failed = append(report.Failed, LinkFailure{Tag: name, Error: err.Error()})
			continue
		}
		if inserted {
			report.Linked++
		} else {
			report.AlreadyLinked++
		}
	}
	return report
}

// ReconcileToolTags diffs a tool's current tag set against the requested
// names: missing tags are resolved and linked, stale links are removed.
// Used by direct admin edits of a tool's tag list.
func (w *Workflow) ReconcileToolTags(ctx context.Context, tool *models.Tool, names []string) (*Report, error) {
	current, err := w.store.GetTagsForTool(ctx, tool.ID)
	if err != nil {
		return nil, fmt.Errorf("get current tags: %w", err)
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	report := &Report{Tool: tool}
	tags, tagFailures := w.ResolveTags(ctx, names)
	report.TagFailures = tagFailures
	report.Links = w.LinkTags(ctx, tool, names, tags)

	for _, tag := range current {
		if wanted[models.NormalizeTagName(tag.Name)] {
			continue
		}
		if err := w.store.UnlinkToolTag(ctx, tool.ID, tag.ID); err != nil {
			report.Links.Failed = append(report.Links.Failed, LinkFailure{Tag: tag.Name, Error: err.Error()})
		}
	}
	return report, nil
}
