package models

import (
	"encoding/json"
	"errors"
)

// Intents recognised from the language-understanding step.
const (
	IntentFindItem        = "find_item"
	IntentShowNextItem    = "show_next_item"
	IntentBookItem        = "book_item"
	IntentProvideItemType = "provide_item_type"
	IntentProvideColor    = "provide_color"
	IntentGreet           = "greet"
	IntentGoodbye         = "goodbye"
	IntentAffirm          = "affirm"
	IntentDeny            = "deny"
	IntentBotChallenge    = "bot_challenge"
	IntentFallback        = "nlu_fallback"
)

// Entity names the engine consumes.
const (
	EntityColor    = "color"
	EntityItemType = "item_type"
	EntityItemName = "item_name"
)

// EntityValue is an entity value that arrives either as a string or a list of strings.
type EntityValue struct {
	Values []string
	IsList bool
}

// StringValue builds a scalar entity value.
func StringValue(s string) EntityValue { return EntityValue{Values: []string{s}} }

// ListValue builds a list entity value.
func ListValue(vals ...string) EntityValue {
	if vals == nil {
		vals = []string{}
	}
	return EntityValue{Values: vals, IsList: true}
}

// First returns the first value or "".
func (v EntityValue) First() string {
	if len(v.Values) == 0 {
		return ""
	}
	return v.Values[0]
}

func (v *EntityValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil && list != nil {
		*v = ListValue(list...)
		return nil
	}
	return errors.New("entity value must be a string or an array of strings")
}

func (v EntityValue) MarshalJSON() ([]byte, error) {
	if v.IsList {
		vals := v.Values
		if vals == nil {
			vals = []string{}
		}
		return json.Marshal(vals)
	}
	return json.Marshal(v.First())
}

// Entity is one extracted entity of the current turn.
type Entity struct {
	Entity string      `json:"entity"`
	Value  EntityValue `json:"value"`
	Start  int         `json:"start"`
	End    int         `json:"end"`
}

// Understanding is the structured {intent, entities} record for one turn.
type Understanding struct {
	Intent     string   `json:"intent"`
	Confidence float32  `json:"confidence"`
	Entities   []Entity `json:"entities"`
}

// Fallback is the record used whenever upstream output cannot be trusted.
func Fallback() Understanding {
	return Understanding{Intent: IntentFallback, Confidence: 0, Entities: []Entity{}}
}
