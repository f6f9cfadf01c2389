// Package usage decides whether a vocabulary word can be used verbatim in a
// given language variant or must be mapped to a colloquial alternative.
package usage

import (
	"strings"

	"github.com/siongui/gojianfan"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
)

// RequiresAlternative reports whether the word needs a colloquial stand-in
// for the given variant.
//
// Only Cantonese is colloquial-sensitive: vocabulary items are stored in
// simplified script, so the word is converted to traditional before testing
// whether it appears in the stored Cantonese example. A missing example is
// treated as "assume usable", never as a failure. Mandarin words are always
// judged as-is.
//
// Deterministic, no side effects, no network.
func RequiresAlternative(word string, variant domain.Variant, exampleUsage string) bool {
	if variant != domain.VariantCantonese {
		return false
	}
	if exampleUsage == "" {
		return false
	}
	traditional := gojianfan.S2T(word)
	return !strings.Contains(exampleUsage, traditional)
}
