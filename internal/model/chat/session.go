package chat

// History is the transcript returned for a session key.
type History struct {
	SessionID    string `json:"sessionId"`
	Turns        []Turn `json:"history"`
	MessageCount int    `json:"messageCount"`
}
