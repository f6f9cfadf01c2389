package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Variant identifies one of the two spoken-language targets an item is
// reviewed in independently.
type Variant string

// Supported language variants.
const (
	VariantMandarin  Variant = "mandarin"
	VariantCantonese Variant = "cantonese"
)

// ErrInvalidVariant is returned when a language variant is not recognized.
var ErrInvalidVariant = errors.New("invalid language variant")

// Variants lists the supported variants in a stable order.
func Variants() []Variant {
	return []Variant{VariantMandarin, VariantCantonese}
}

// ParseVariant converts a request string into a Variant.
// Matching is case-insensitive. Returns ErrInvalidVariant for anything else.
func ParseVariant(s string) (Variant, error) {
	candidate := Variant(strings.ToLower(s))
	for _, v := range Variants() {
		if candidate == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVariant, s)
}

// IsValid reports whether the variant is one of the supported values.
func (v Variant) IsValid() bool {
	for _, known := range Variants() {
		if v == known {
			return true
		}
	}
	return false
}
