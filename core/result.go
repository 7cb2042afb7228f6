package core

// ChatRequest is the orchestration entry point accepted from the transport
// layer. Origin, when set, is used to normalize relative media URLs to
// absolute ones; an empty Origin leaves them relative.
type ChatRequest struct {
	Question      string `json:"question"`
	GenerateImage bool   `json:"generate_image"`
	GenerateAudio bool   `json:"generate_audio"`
	Language      string `json:"language"`
	SessionID     string `json:"session_id"`
	Origin        string `json:"-"`
}

// SourceRef is a user-facing citation: a snippet of the retrieved chunk, its
// document identifier and the similarity score formatted to two decimals.
type SourceRef struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Score  string `json:"score"`
}

// ChatResult is the unified multimodal answer assembled once per request.
// Media URLs are nil when the corresponding subtask was disabled or failed;
// a nil URL never indicates a failed request.
type ChatResult struct {
	Answer     string      `json:"answer"`
	ImageURL   *string     `json:"image_url"`
	AudioURL   *string     `json:"audio_url"`
	IsRelevant bool        `json:"is_relevant"`
	Sources    []SourceRef `json:"sources"`
	History    []Message   `json:"conversation_history"`
}
