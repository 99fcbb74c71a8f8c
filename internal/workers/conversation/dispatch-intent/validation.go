package dispatchintent

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ValidLocations = []string{"Manhattan", "Nyc", "New york city", "Chicago", "California"}
	ValidCuisines  = []string{"Chinese", "Italian", "Mexican"}
)

var (
	locationMessage = fmt.Sprintf("Please select a valid location from: %s.", strings.Join(ValidLocations, ", "))
	cuisineMessage  = fmt.Sprintf("The cuisine options available are: %s. Please pick one.", strings.Join(ValidCuisines, ", "))
)

// ValidateSlot checks Location and Cuisine against their allow-lists after capitalizing the
// value. Any other slot is valid. The message is empty when the value is accepted.
func ValidateSlot(name, value string) (bool, string) {
	switch name {
	case SlotLocation:
		if contains(ValidLocations, Capitalize(value)) {
			return true, ""
		}
		return false, locationMessage
	case SlotCuisine:
		if contains(ValidCuisines, Capitalize(value)) {
			return true, ""
		}
		return false, cuisineMessage
	default:
		return true, ""
	}
}

// Capitalize upper-cases the first letter and lower-cases the rest: "NEW YORK city" -> "New york city".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// slotValue resolves the interpreted value, falling back to the raw utterance.
func slotValue(slots map[string]*Slot, name string) (string, bool) {
	slot, ok := slots[name]
	if !ok || slot == nil || slot.Value == nil {
		return "", false
	}
	if v := slot.Value.InterpretedValue; v != "" {
		return v, true
	}
	if v := slot.Value.OriginalValue; v != "" {
		return v, true
	}
	return "", false
}
