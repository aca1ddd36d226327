// Package safety implements the crisis lexicon gate that runs before any
// message reaches the model.
package safety

import "strings"

// crisisPhrases is the curated self-harm / suicide-risk lexicon. Matching is
// plain substring containment, so entries stay long enough not to over-match
// everyday language. Missed phrasings are an accepted limitation of the
// lexicon approach.
var crisisPhrases = []string{
	"suicide",
	"suicidal",
	"kill myself",
	"end my life",
	"ending my life",
	"self harm",
	"self-harm",
	"hurt myself",
	"i want to die",
	"want to be dead",
	"better off dead",
	"no reason to live",
}

// CrisisMessage is the static response returned for flagged input. Flagged
// turns are never forwarded to the model and record nothing.
const CrisisMessage = "If you're in immediate danger, please reach out now:\n\n" +
	"- US: call or text 988 (Suicide & Crisis Lifeline)\n" +
	"- UK & ROI: Samaritans, 116 123\n" +
	"- Elsewhere: contact your local emergency services\n\n" +
	"You deserve support from a real person right away."

// Flagged reports whether the text contains any crisis phrase,
// case-insensitively. It never fails; empty input is not flagged.
func Flagged(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, phrase := range crisisPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
