package handlers

import (
	"net/http"

	recordsRepo "closetcircle/database/repository/records"
	"closetcircle/models"
	"closetcircle/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventsHandler struct {
	repo recordsRepo.BookingEventRepository
}

func NewEventsHandler(repo recordsRepo.BookingEventRepository) *EventsHandler {
	return &EventsHandler{repo: repo}
}

// HandleListEvents returns the booking history of the caller, newest first.
// With ?transactionId= it returns one cart's events in the order they happened.
func (h *EventsHandler) HandleListEvents(c *gin.Context) {
	email := identity(c, c.Query("email"))
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "email is required")
		return
	}

	var (
		events []models.BookingEvent
		err    error
	)
	if txID := c.Query("transactionId"); txID != "" {
		events, err = h.repo.GetByTransactionID(c.Request.Context(), txID)
		events = ownedBy(events, email)
	} else {
		events, err = h.repo.GetByEmail(c.Request.Context(), email)
	}
	if err != nil {
		getLogger(c).Error("Failed to load booking events", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Assistant unavailable", "booking history could not be loaded")
		return
	}
	if events == nil {
		events = []models.BookingEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "events": events})
}

func ownedBy(events []models.BookingEvent, email string) []models.BookingEvent {
	out := make([]models.BookingEvent, 0, len(events))
	for _, e := range events {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out
}
