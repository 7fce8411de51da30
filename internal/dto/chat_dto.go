package dto

// ChatEvent is the single wire shape on the chat websocket, both directions.
type ChatEvent struct {
	Event string `json:"event" validate:"required"`
	Data  string `json:"data"`
}

type SessionResponse struct {
	SessionId string `json:"session_id"`
	Token     string `json:"token"`
}

type IndexResponse struct {
	App       string   `json:"app"`
	Year      int      `json:"year"`
	Endpoints []string `json:"endpoints"`
}
