package ai

import (
	"context"
	"regexp"
	"strings"

	"closetcircle/models"
	"closetcircle/services/discovery"
)

// KeywordUnderstander is the offline language-understanding step used when no
// Gemini key is configured. It recognises a fixed vocabulary only.
type KeywordUnderstander struct{}

func NewKeywordUnderstander() *KeywordUnderstander {
	return &KeywordUnderstander{}
}

var wordPattern = regexp.MustCompile(`[a-z0-9'-]+`)

var intentKeywords = []struct {
	intent string
	words  []string
}{
	{models.IntentBotChallenge, []string{"bot", "robot", "human"}},
	{models.IntentBookItem, []string{"book", "reserve", "rent", "cart"}},
	{models.IntentShowNextItem, []string{"next", "another", "more", "else", "other"}},
	{models.IntentFindItem, []string{"find", "search", "looking", "show", "want", "need", "any"}},
	{models.IntentGoodbye, []string{"bye", "goodbye", "later"}},
	{models.IntentGreet, []string{"hi", "hello", "hey"}},
	{models.IntentAffirm, []string{"yes", "yeah", "yep", "sure", "ok", "okay"}},
	{models.IntentDeny, []string{"no", "nope", "nah"}},
}

func (k *KeywordUnderstander) Understand(_ context.Context, text string) models.Understanding {
	lower := strings.ToLower(text)
	words := wordPattern.FindAllStringIndex(lower, -1)

	var entities []models.Entity
	var colors []string
	colorStart, colorEnd := -1, -1
	seen := make(map[string]bool)

	for _, loc := range words {
		w := lower[loc[0]:loc[1]]
		if discovery.IsColorName(w) {
			colors = append(colors, w)
			if colorStart < 0 {
				colorStart = loc[0]
			}
			colorEnd = loc[1]
			continue
		}
		term, ok := typeTerm(w)
		if ok && !seen[models.EntityItemType] {
			seen[models.EntityItemType] = true
			entities = append(entities, models.Entity{
				Entity: models.EntityItemType,
				Value:  models.StringValue(term),
				Start:  loc[0],
				End:    loc[1],
			})
		}
	}
	if len(colors) > 0 {
		entities = append(entities, models.Entity{
			Entity: models.EntityColor,
			Value:  models.ListValue(colors...),
			Start:  colorStart,
			End:    colorEnd,
		})
	}

	intent := models.IntentFallback
	for _, candidate := range intentKeywords {
		if containsWord(lower, words, candidate.words) {
			intent = candidate.intent
			break
		}
	}
	if intent == models.IntentFallback && len(entities) > 0 {
		intent = models.IntentFindItem
	}
	// A message naming clothing is a search even if it also says "more" or "show".
	if intent == models.IntentShowNextItem && len(entities) > 0 {
		intent = models.IntentFindItem
	}

	return recognised(intent, entities)
}

// typeTerm matches a word, or its singular, against the clothing vocabulary.
func typeTerm(w string) (string, bool) {
	for _, candidate := range []string{w, strings.TrimSuffix(w, "es"), strings.TrimSuffix(w, "s")} {
		if discovery.IsTypeTerm(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func containsWord(text string, locs [][]int, words []string) bool {
	for _, loc := range locs {
		w := text[loc[0]:loc[1]]
		for _, candidate := range words {
			if w == candidate {
				return true
			}
		}
	}
	return false
}
