package discovery

import (
	"context"
	"errors"

	"closetcircle/models"

	"go.uber.org/zap"
)

// Search normalizes the current turn's entities, filters a fresh catalog snapshot
// and presents the first match. A failed or empty search clears the session;
// missing criteria and backend failures leave it untouched.
func (s *DefaultDiscoveryService) Search(ctx context.Context, entities []models.Entity) (models.Reply, error) {
	criteria, err := Normalize(entities)
	if err != nil {
		return models.Reply{
			Text:    msgPromptCriteria,
			Outcome: models.OutcomePrompt,
			Patch:   models.NoChange(),
		}, &EngineError{Code: CodeInsufficientCriteria, Message: "search needs a type, colour or name", Cause: err}
	}

	items, err := s.Catalog.ListItems(ctx)
	if err != nil {
		s.log().Error("Catalog fetch failed", zap.Error(err))
		return backendDown(), newBackendError("list catalog", err)
	}

	if len(items) == 0 {
		return models.Reply{
			Text:    msgEmptyCatalog,
			Outcome: models.OutcomeEmpty,
			Patch:   models.ClearSession(),
		}, nil
	}

	matches := FilterCandidates(items, criteria)
	s.log().Info("Search completed",
		zap.Int("catalog", len(items)),
		zap.Int("matches", len(matches)),
	)

	if len(matches) == 0 {
		return models.Reply{
			Text:    emptyResultMessage(items),
			Outcome: models.OutcomeEmpty,
			Patch:   models.ClearSession(),
		}, nil
	}

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	first := matches[0]
	snapshot := criteria

	return models.Reply{
		Text:     foundMessage(first),
		ImageURL: first.FirstImage(),
		Item:     &first,
		Outcome:  models.OutcomePresented,
		Patch: models.ReplaceSession(models.SessionState{
			Criteria:   &snapshot,
			MatchedIDs: ids,
			Cursor:     0,
			SelectedID: first.ID,
		}),
	}, nil
}

func backendDown() models.Reply {
	return models.Reply{
		Text:    msgBackendDown,
		Outcome: models.OutcomeUnavailable,
		Patch:   models.NoChange(),
	}
}

// IsInsufficientCriteria reports whether err asks the user for more search terms.
func IsInsufficientCriteria(err error) bool {
	return errors.Is(err, ErrInsufficientCriteria)
}
