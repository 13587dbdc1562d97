package entity

// Exchange is one completed (question, answer) pair in a chat session.
type Exchange struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// Source is a citation attached to an answer, e.g. "Intro to MCP - Lesson 2".
// Sources travel by value with each result; nothing retains them between
// requests.
type Source struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}
