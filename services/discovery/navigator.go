package discovery

import (
	"context"
	"errors"

	commerceRepo "closetcircle/database/repository/commerce"
	"closetcircle/models"

	"go.uber.org/zap"
)

// Next advances the cursor and presents the item under it, refetched by id.
//
//	Idle      -> told to search first, nothing changes
//	Browsing  -> cursor+1, item refetched and presented
//	Exhausted -> whole session cleared
func (s *DefaultDiscoveryService) Next(ctx context.Context, state models.SessionState) (models.Reply, error) {
	if !state.Browsing() {
		patch := models.NoChange()
		if !state.IsCleared() {
			// A half-written session is not a result set; reset it.
			patch = models.ClearSession()
		}
		return models.Reply{Text: msgNoSearch, Outcome: models.OutcomeNoSearch, Patch: patch}, nil
	}

	next := state.Cursor + 1
	if next >= len(state.MatchedIDs) {
		return models.Reply{
			Text:    msgExhausted,
			Outcome: models.OutcomeExhausted,
			Patch:   models.ClearSession(),
		}, nil
	}

	id := state.MatchedIDs[next]
	item, err := s.Catalog.GetItem(ctx, id)
	if errors.Is(err, commerceRepo.ErrItemNotFound) {
		s.log().Warn("Matched item vanished from catalog", zap.String("item_id", id))
		return models.Reply{
			Text:    msgUnavailable,
			Outcome: models.OutcomeItemUnavailable,
			Patch:   models.NoChange(),
		}, &EngineError{Code: CodeItemUnavailable, Message: id, Cause: ErrItemUnavailable}
	}
	if err != nil {
		s.log().Error("Item fetch failed", zap.String("item_id", id), zap.Error(err))
		return backendDown(), newBackendError("get item", err)
	}

	advanced := models.SessionState{
		Criteria:   state.Criteria,
		MatchedIDs: append([]string(nil), state.MatchedIDs...),
		Cursor:     next,
		SelectedID: item.ID,
	}
	return models.Reply{
		Text:     nextMessage(*item),
		ImageURL: item.FirstImage(),
		Item:     item,
		Outcome:  models.OutcomePresented,
		Patch:    models.ReplaceSession(advanced),
	}, nil
}
