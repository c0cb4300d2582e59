package models

import "time"

// FilterCriteria holds the canonical filter terms of one search.
// Colors is nil for "any colour" and never an empty non-nil slice.
type FilterCriteria struct {
	ItemType *string `json:"itemType,omitempty"`
	Colors   []int   `json:"colors,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (f FilterCriteria) IsEmpty() bool {
	return f.ItemType == nil && len(f.Colors) == 0 && f.Name == nil
}

// SessionState is the search/browse state of a single conversation.
// It is replaced as a whole or cleared as a whole, never patched field by field.
type SessionState struct {
	Criteria   *FilterCriteria `json:"criteria,omitempty"`
	MatchedIDs []string        `json:"matchedIds,omitempty"`
	Cursor     int             `json:"cursor"`
	SelectedID string          `json:"selectedId,omitempty"`
}

// IsCleared reports whether every field holds its zero value.
func (s SessionState) IsCleared() bool {
	return s.Criteria == nil && len(s.MatchedIDs) == 0 && s.Cursor == 0 && s.SelectedID == ""
}

// Browsing reports whether the cursor points into a non-empty result set.
func (s SessionState) Browsing() bool {
	return len(s.MatchedIDs) > 0 && s.Cursor >= 0 && s.Cursor < len(s.MatchedIDs)
}

// PatchKind tells the caller how to update the persisted session.
type PatchKind string

const (
	PatchNone    PatchKind = "none"
	PatchReplace PatchKind = "replace"
	PatchClear   PatchKind = "clear"
)

// SessionPatch is returned by every engine operation.
type SessionPatch struct {
	Kind  PatchKind    `json:"kind"`
	State SessionState `json:"state"`
}

// NoChange leaves the session untouched.
func NoChange() SessionPatch { return SessionPatch{Kind: PatchNone} }

// ClearSession resets the whole session.
func ClearSession() SessionPatch { return SessionPatch{Kind: PatchClear} }

// ReplaceSession overwrites the session with s.
func ReplaceSession(s SessionState) SessionPatch {
	return SessionPatch{Kind: PatchReplace, State: s}
}

// Apply returns the session that results from applying p to prev.
func (p SessionPatch) Apply(prev SessionState) SessionState {
	switch p.Kind {
	case PatchClear:
		return SessionState{}
	case PatchReplace:
		return p.State
	default:
		return prev
	}
}

// Conversation is the value persisted per conversation id.
// Email is the stored identity slot and survives session clears.
type Conversation struct {
	ID        string       `json:"id"`
	Email     string       `json:"email,omitempty"`
	Session   SessionState `json:"session"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
