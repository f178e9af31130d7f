package schema

import "time"

// Message roles accepted by the service.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Chat is a single conversation, optionally bound to an uploaded document.
type Chat struct {
	UserID    string    `json:"user_id"`
	ChatID    string    `json:"chat_id"`
	Title     *string   `json:"title"`
	PDFFileID *string   `json:"pdf_file_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single chat turn.
type Message struct {
	ID        string    `json:"_id"`
	ChatID    string    `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateChatRequest creates a chat owned by UserID.
type CreateChatRequest struct {
	UserID string `json:"user_id"`
}

// CreateChatResult carries the server-assigned chat id.
type CreateChatResult struct {
	ChatID string `json:"chat_id"`
}

// CreateMessageRequest appends a message to a chat.
type CreateMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CreateMessageResult carries the server-assigned message id.
type CreateMessageResult struct {
	MessageID string `json:"message_id"`
}

// UploadResult confirms a stored document.
type UploadResult struct {
	Message string `json:"message"`
	FileID  string `json:"file_id"`
}

// StatusResult is the generic acknowledgement envelope.
type StatusResult struct {
	Message string `json:"message"`
}
