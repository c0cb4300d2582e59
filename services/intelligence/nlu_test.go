package ai

import (
	"testing"

	"closetcircle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnderstandingValid(t *testing.T) {
	raw := `{
		"intent": "find_item",
		"entities": [
			{"entity": "item_type", "value": "dress", "start": 8, "end": 13},
			{"entity": "color", "value": ["10", "13"], "start": 2.0, "end": 7.9},
			{"entity": "size", "value": "M", "start": 0, "end": 1}
		]
	}`

	u := ParseUnderstanding([]byte(raw))
	assert.Equal(t, models.IntentFindItem, u.Intent)
	assert.Equal(t, RecognisedConfidence, u.Confidence)
	require.Len(t, u.Entities, 2)

	assert.Equal(t, models.EntityItemType, u.Entities[0].Entity)
	assert.Equal(t, "dress", u.Entities[0].Value.First())
	assert.False(t, u.Entities[0].Value.IsList)

	assert.Equal(t, models.EntityColor, u.Entities[1].Entity)
	assert.Equal(t, []string{"10", "13"}, u.Entities[1].Value.Values)
	assert.True(t, u.Entities[1].Value.IsList)
	assert.Equal(t, 2, u.Entities[1].Start)
	assert.Equal(t, 7, u.Entities[1].End)
}

func TestParseUnderstandingFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `I think you want a dress`},
		{name: "missing intent", raw: `{"entities": []}`},
		{name: "missing entities", raw: `{"intent": "greet"}`},
		{name: "intent not a string", raw: `{"intent": 4, "entities": []}`},
		{name: "entity missing start", raw: `{"intent": "find_item", "entities": [{"entity": "color", "value": "red", "end": 3}]}`},
		{name: "value wrong type", raw: `{"intent": "find_item", "entities": [{"entity": "color", "value": 12, "start": 0, "end": 3}]}`},
		{name: "value list of numbers", raw: `{"intent": "find_item", "entities": [{"entity": "color", "value": [10], "start": 0, "end": 3}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ParseUnderstanding([]byte(tt.raw))
			assert.Equal(t, models.Fallback(), u)
		})
	}
}

func TestParseUnderstandingUnknownIntent(t *testing.T) {
	u := ParseUnderstanding([]byte(`{"intent": "order_pizza", "entities": []}`))
	assert.Equal(t, models.IntentFallback, u.Intent)
	assert.Zero(t, u.Confidence)
	assert.Empty(t, u.Entities)
}

func TestRecognised(t *testing.T) {
	u := recognised(models.IntentShowNextItem, nil)
	assert.Equal(t, models.IntentShowNextItem, u.Intent)
	assert.Equal(t, RecognisedConfidence, u.Confidence)
	assert.NotNil(t, u.Entities)

	u = recognised(models.IntentFallback, []models.Entity{{Entity: models.EntityColor, Value: models.ListValue("red")}})
	assert.Equal(t, models.IntentFallback, u.Intent)
	assert.Zero(t, u.Confidence)
	assert.Len(t, u.Entities, 1)
}
