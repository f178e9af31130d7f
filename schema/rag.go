package schema

// AskRequest queries the retrieval backend within a chat's document context.
type AskRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
	ChatID string `json:"chat_id"`
	TopK   int    `json:"top_k,omitempty"`
}

// AskResult is the generated answer. ChatID and Query are only populated when
// the backend found no relevant context.
type AskResult struct {
	ChatID string `json:"chat_id,omitempty"`
	Query  string `json:"query,omitempty"`
	Answer string `json:"answer"`
}

// ProcessResult reports document chunking for a chat.
type ProcessResult struct {
	ChatID            string   `json:"chat_id"`
	Chunks            []string `json:"chunks"`
	NumChunks         int      `json:"num_chunks"`
	FirstChunkPreview string   `json:"first_chunk_preview"`
}

// EmbedResult reports embedding storage for a chat.
type EmbedResult struct {
	ChatID          string `json:"chat_id"`
	NumChunksStored int    `json:"num_chunks_stored"`
	CollectionName  string `json:"collection_name"`
}
