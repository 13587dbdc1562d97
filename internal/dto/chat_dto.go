package dto

type QueryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
}

type SourceDTO struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

type QueryResponse struct {
	Answer    string      `json:"answer"`
	Sources   []SourceDTO `json:"sources"`
	SessionId string      `json:"session_id"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}
