package rag

import "strings"

// Store is a fixed, ordered, in-memory collection of reference passages.
// It is loaded once at startup and never mutated, so concurrent reads
// need no locking.
type Store struct {
	docs []string
}

// NewStore creates a store over the given passages
func NewStore(docs []string) *Store {
	copied := make([]string, len(docs))
	copy(copied, docs)
	return &Store{docs: copied}
}

// NewDefaultStore creates the store with the built-in NHS guidance passages
func NewDefaultStore() *Store {
	return NewStore([]string{
		"High blood pressure (hypertension) means your blood pressure is consistently too high. It can increase your risk of heart disease and stroke.",

		"Asthma is a common lung condition that causes occasional breathing difficulties. It can usually be controlled well with inhalers.",

		"To book a GP appointment in the UK, you can contact your GP surgery by phone, use their website, or use the NHS App.",

		"Chest pain can be a symptom of serious conditions such as heart attack. If chest pain is severe or accompanied by shortness of breath, call emergency services immediately.",

		"The NHS App allows patients to book appointments, order repeat prescriptions, and view their GP health record.",
	})
}

// Documents returns the passages in store order
func (s *Store) Documents() []string {
	docs := make([]string, len(s.docs))
	copy(docs, s.docs)
	return docs
}

// Count returns the number of passages
func (s *Store) Count() int {
	return len(s.docs)
}

// MatchIn returns, in store order and without duplicates, every passage
// whose exact text appears as a substring of response. This is the sole
// reconciliation mechanism between the selector's freeform LLM output and
// the store: a reworded passage matches nothing.
func (s *Store) MatchIn(response string) []string {
	var matched []string
	for _, doc := range s.docs {
		if strings.Contains(response, doc) {
			matched = append(matched, doc)
		}
	}
	return matched
}
