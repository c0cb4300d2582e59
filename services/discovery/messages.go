package discovery

import (
	"fmt"
	"strings"

	"closetcircle/models"
)

const (
	msgPromptCriteria = "What are you looking for? You can tell me a type (like dress, shoes, jacket), a color, or a brand name!"
	msgEmptyCatalog   = "Sorry, there are no items in the database yet. Check back later!"
	msgExhausted      = "That's all the items I found! Would you like to search for something else?"
	msgNoSearch       = "No more items to show. Try a new search!"
	msgUnavailable    = "Sorry, I couldn't find that item. Try a new search!"
	msgBackendDown    = "Sorry, I'm having trouble connecting to the server. Please try again later."

	sampleTitleCount = 3
)

// MsgBackendDown is the apology shared by every engine operation on backend failure.
const MsgBackendDown = msgBackendDown

func describe(item models.CatalogItem) string {
	return fmt.Sprintf("%s - %s ($%.2f)", item.Title, item.Description, item.Price)
}

func foundMessage(item models.CatalogItem) string {
	return fmt.Sprintf("Found: %s. Would you like to book this item?", describe(item))
}

func nextMessage(item models.CatalogItem) string {
	return fmt.Sprintf("How about this one: %s. Would you like to book this item?", describe(item))
}

func emptyResultMessage(catalog []models.CatalogItem) string {
	titles := make([]string, 0, sampleTitleCount)
	for _, item := range catalog {
		if len(titles) == sampleTitleCount {
			break
		}
		titles = append(titles, item.Title)
	}
	return fmt.Sprintf("Sorry, I couldn't find any items matching your search. Here are some items we have: %s",
		strings.Join(titles, ", "))
}
