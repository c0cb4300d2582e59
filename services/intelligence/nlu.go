package ai

import (
	"encoding/json"
	"strings"

	"closetcircle/models"

	"github.com/go-playground/validator/v10"
)

// RecognisedConfidence is attached to every intent that passes validation.
const RecognisedConfidence float32 = 0.9

var validate = validator.New()

var knownIntents = map[string]bool{
	models.IntentFindItem:        true,
	models.IntentShowNextItem:    true,
	models.IntentBookItem:        true,
	models.IntentProvideItemType: true,
	models.IntentProvideColor:    true,
	models.IntentGreet:           true,
	models.IntentGoodbye:         true,
	models.IntentAffirm:          true,
	models.IntentDeny:            true,
	models.IntentBotChallenge:    true,
}

var knownEntities = map[string]bool{
	models.EntityColor:    true,
	models.EntityItemType: true,
	models.EntityItemName: true,
}

type rawEntity struct {
	Entity *string             `json:"entity" validate:"required"`
	Value  *models.EntityValue `json:"value" validate:"required"`
	Start  *float64            `json:"start" validate:"required"`
	End    *float64            `json:"end" validate:"required"`
}

type rawUnderstanding struct {
	Intent   *string     `json:"intent" validate:"required"`
	Entities []rawEntity `json:"entities" validate:"required,dive"`
}

// ParseUnderstanding validates an upstream LU record and coerces it into a
// models.Understanding. It never fails: anything malformed becomes the fallback.
func ParseUnderstanding(raw []byte) models.Understanding {
	var rec rawUnderstanding
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Fallback()
	}
	if err := validate.Struct(rec); err != nil {
		return models.Fallback()
	}

	entities := make([]models.Entity, 0, len(rec.Entities))
	for _, e := range rec.Entities {
		if !knownEntities[*e.Entity] {
			continue
		}
		entities = append(entities, models.Entity{
			Entity: *e.Entity,
			Value:  *e.Value,
			Start:  int(*e.Start),
			End:    int(*e.End),
		})
	}

	return recognised(strings.TrimSpace(*rec.Intent), entities)
}

// recognised builds a record for an intent produced in-process.
func recognised(intent string, entities []models.Entity) models.Understanding {
	if entities == nil {
		entities = []models.Entity{}
	}
	if !knownIntents[intent] {
		return models.Understanding{Intent: models.IntentFallback, Confidence: 0, Entities: entities}
	}
	return models.Understanding{Intent: intent, Confidence: RecognisedConfidence, Entities: entities}
}
