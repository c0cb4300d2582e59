package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Assistant endpoints
	MessageHandler      gin.HandlerFunc
	SearchHandler       gin.HandlerFunc
	NextHandler         gin.HandlerFunc
	BookHandler         gin.HandlerFunc
	IdentityHandler     gin.HandlerFunc
	ResetSessionHandler gin.HandlerFunc

	// Booking history; nil when booking events are disabled.
	EventsHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires the assistant handler methods into a bundle.
// events may be nil.
func NewHandlerBundle(assistant *AssistantHandler, events *EventsHandler, health gin.HandlerFunc) *HandlerBundle {
	hb := &HandlerBundle{
		MessageHandler:      assistant.HandleMessage,
		SearchHandler:       assistant.HandleSearch,
		NextHandler:         assistant.HandleNext,
		BookHandler:         assistant.HandleBook,
		IdentityHandler:     assistant.HandleIdentity,
		ResetSessionHandler: assistant.HandleResetSession,
		HealthHandler:       health,
	}
	if events != nil {
		hb.EventsHandler = events.HandleListEvents
	}
	return hb
}
