package service

import "strings"

// highRiskPhrases flag a message as a medical emergency
var highRiskPhrases = []string{
	"chest pain", "stroke", "heart attack",
	"unconscious", "severe bleeding",
	"can't breathe", "not breathing",
	"suicidal", "overdose", "seizure",
	"collapse", "paralysis",
}

// DetectEmergency reports whether the message contains a high-risk phrase.
// Pure function over the raw message; it runs regardless of how the rest
// of the pipeline went.
func DetectEmergency(message string) bool {
	lowered := strings.ToLower(message)
	for _, phrase := range highRiskPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
