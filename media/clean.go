package media

import "regexp"

// narrationUnsafe matches characters hostile to narration (emoji, symbols);
// everything outside letters, digits, whitespace and basic punctuation.
// Unicode classes keep non-Latin scripts narratable.
var narrationUnsafe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?'"-]`)

// CleanNarration strips emoji and symbols from text before it is sent to the
// narration endpoint. The result may be empty, in which case no audio should
// be generated.
func CleanNarration(text string) string {
	return narrationUnsafe.ReplaceAllString(text, "")
}
