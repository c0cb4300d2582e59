package models

// AIRequest is the payload coming from the chat widget into /api/assistant/message.
type AIRequest struct {
	ConversationID string `json:"conversationId"`
	Text           string `json:"text" binding:"required"`
	Email          string `json:"email,omitempty"`
}

// Outcome classifies what an engine operation did.
type Outcome string

const (
	OutcomePresented       Outcome = "presented"       // an item is on screen
	OutcomeEmpty           Outcome = "empty"           // search ran, nothing matched
	OutcomePrompt          Outcome = "prompt"          // more criteria needed
	OutcomeExhausted       Outcome = "exhausted"       // no more results
	OutcomeNoSearch        Outcome = "no_search"       // next without a search
	OutcomeItemUnavailable Outcome = "item_unavailable"
	OutcomeBooked          Outcome = "booked"
	OutcomeNotBooked       Outcome = "not_booked"
	OutcomeUnavailable     Outcome = "backend_unavailable"
	OutcomeSmallTalk       Outcome = "small_talk"
)

// Reply is the result of one engine operation: a user-facing message plus the
// session patch the caller must persist.
type Reply struct {
	Text     string       `json:"response"`
	ImageURL string       `json:"imageUrl,omitempty"`
	Item     *CatalogItem `json:"item,omitempty"`
	Cart     *CartSummary `json:"cart,omitempty"`
	Outcome  Outcome      `json:"outcome"`
	Patch    SessionPatch `json:"-"`
}

// AIResponse is what the handler returns to the frontend.
type AIResponse struct {
	ConversationID string       `json:"conversationId"`
	Intent         string       `json:"intent"`
	ResponseText   string       `json:"response"`
	ImageURL       string       `json:"imageUrl,omitempty"`
	Item           *CatalogItem `json:"item,omitempty"`
	Cart           *CartSummary `json:"cart,omitempty"`
	Outcome        Outcome      `json:"outcome"`
}
