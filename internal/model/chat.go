package model

// Confidence labels for a chat reply
const (
	ConfidenceNotApplicable = "Not Applicable"
	ConfidenceMedium        = "Medium"
	ConfidenceHigh          = "High"
	ConfidenceHighEmergency = "High (Emergency Identified)"
)

// ChatRequest is a user question
type ChatRequest struct {
	Message string `json:"message"`
}

// Source is one reference passage a reply was grounded on
type Source struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ChatResponse is the assistant's reply
type ChatResponse struct {
	Response   string   `json:"response"`
	Sources    []Source `json:"sources"`
	Confidence string   `json:"confidence"`
	Emergency  bool     `json:"emergency"`
}
