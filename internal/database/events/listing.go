package events

import (
	"context"
	"strings"

	"github.com/evops/catalog/internal/database"
	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/entities"
)

// ListFilter selects a page of events. Pages are ordered by ascending event
// ID and LastID is an exclusive cursor: pass the ID of the last event of the
// previous page to get the next one.
type ListFilter struct {
	LastID *domain.EventID
	Limit  domain.Limit
	TagIDs []domain.TagID      // events linked to any of these tags
	Search *domain.SearchTerm // case-insensitive substring of title or description
}

// List returns one page of events matching filter.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	db := r.db.DB.WithContext(ctx)

	query := db.Joins("Author").Order("events.id ASC").Limit(filter.Limit.Int())
	if filter.LastID != nil {
		query = query.Where("events.id > ?", filter.LastID.UUID())
	}
	if len(filter.TagIDs) > 0 {
		tagIDs := make([]any, len(filter.TagIDs))
		for i, id := range filter.TagIDs {
			tagIDs[i] = id.UUID()
		}
		linked := db.Model(&entities.EventTag{}).Select("event_id").Where("tag_id IN ?", tagIDs)
		query = query.Where("events.id IN (?)", linked)
	}
	if filter.Search != nil {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search.String())) + "%"
		title, description := r.db.CaseFold("events.title"), r.db.CaseFold("events.description")
		query = query.Where(
			"("+title+" LIKE ? ESCAPE '!' OR "+description+" LIKE ? ESCAPE '!')",
			pattern, pattern,
		)
	}

	var rows []entities.Event
	if err := query.Find(&rows).Error; err != nil {
		return nil, database.Failure(r.log, "list events", err)
	}

	events, err := assemble(db, rows)
	if err != nil {
		return nil, database.Failure(r.log, "assemble events", err)
	}
	return events, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes s match literally inside a LIKE pattern using '!' as the
// escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
