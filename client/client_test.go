package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumerqa/chatkit/client"
	"github.com/sumerqa/chatkit/client/auth/store"
	"github.com/sumerqa/chatkit/schema"
)

func newClient(t *testing.T, handler http.Handler, options ...client.Option) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return client.New(server.URL, options...)
}

func TestCreateChat(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chatsCreate", func(w http.ResponseWriter, r *http.Request) {
		request := &schema.CreateChatRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(request))
		assert.Equal(t, "user-1", request.UserID)
		_ = json.NewEncoder(w).Encode(&schema.CreateChatResult{ChatID: "chat-1"})
	})
	c := newClient(t, mux)

	chatID, err := c.CreateChat(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "chat-1", chatID)
}

func TestListChats(t *testing.T) {
	payload := `[
		{"user_id":"user-1","chat_id":"chat-2","title":"report.pdf","pdf_file_id":"f2",
		 "created_at":"2025-08-30T10:00:00.123456+00:00","updated_at":"2025-08-30T11:00:00+00:00"},
		{"user_id":"user-1","chat_id":"chat-1","title":null,"pdf_file_id":null,
		 "created_at":"2025-08-29T09:00:00+00:00","updated_at":"2025-08-29T09:00:00+00:00"}
	]`
	mux := http.NewServeMux()
	mux.HandleFunc("/users/user-1/chats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})
	c := newClient(t, mux)

	chats, err := c.ListChats(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "chat-2", chats[0].ChatID)
	require.NotNil(t, chats[0].Title)
	assert.Equal(t, "report.pdf", *chats[0].Title)
	assert.Nil(t, chats[1].Title)
	assert.Equal(t, 2025, chats[0].CreatedAt.Year())
}

func TestDeleteChatNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chats/chat-9", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Chat not found"}`))
	})
	c := newClient(t, mux)

	err := c.DeleteChat(context.Background(), "chat-9")
	var apiErr *schema.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Chat not found", apiErr.Detail)
}

func TestSendMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chats/chat-1/messages", func(w http.ResponseWriter, r *http.Request) {
		request := &schema.CreateMessageRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(request))
		assert.Equal(t, schema.RoleUser, request.Role)
		assert.Equal(t, "hello", request.Content)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&schema.CreateMessageResult{MessageID: "msg-1"})
	})
	c := newClient(t, mux)

	messageID, err := c.SendMessage(context.Background(), "chat-1", schema.RoleUser, "  hello ")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", messageID)
}

func TestSendMessageValidation(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid messages must not reach the wire")
	}))

	_, err := c.SendMessage(context.Background(), "chat-1", "system", "hello")
	assert.Error(t, err)
	_, err = c.SendMessage(context.Background(), "chat-1", schema.RoleUser, "   ")
	assert.Error(t, err)
	_, err = c.SendMessage(context.Background(), "chat-1", schema.RoleBot, strings.Repeat("a", 5001))
	assert.Error(t, err)
}

func TestMessagesPaging(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chats/chat-1/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "100", r.URL.Query().Get("skip"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"m1","chat_id":"chat-1","role":"user","content":"hi","timestamp":"2025-08-30T10:00:00+00:00"},
			{"_id":"m2","chat_id":"chat-1","role":"bot","content":"hello","timestamp":"2025-08-30T10:00:05+00:00"}
		]`))
	})
	c := newClient(t, mux)

	messages, err := c.Messages(context.Background(), "chat-1", client.ListOptions{Limit: 50, Skip: 100})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, schema.RoleBot, messages[1].Role)
	assert.True(t, messages[0].Timestamp.Before(messages[1].Timestamp))
}

func TestUploadDocument(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chats/chat-1/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&schema.UploadResult{Message: "PDF uploaded", FileID: "file-1"})
	})
	c := newClient(t, mux)

	fileID, err := c.UploadDocument(context.Background(), "chat-1", "report.pdf", strings.NewReader("%PDF-1.4 ..."))
	require.NoError(t, err)
	assert.Equal(t, "file-1", fileID)
}

func TestUploadDocumentRejectedLocally(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("rejected uploads must not reach the wire")
	}))

	_, err := c.UploadDocument(context.Background(), "chat-1", "notes.txt", strings.NewReader("text"))
	assert.Error(t, err)

	oversized := bytes.NewReader(make([]byte, (15<<20)+1))
	_, err = c.UploadDocument(context.Background(), "chat-1", "big.pdf", oversized)
	assert.Error(t, err)
}

func TestAsk(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rag/ask", func(w http.ResponseWriter, r *http.Request) {
		request := &schema.AskRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(request))
		assert.Equal(t, "what is the total?", request.Query)
		assert.Equal(t, 3, request.TopK)
		_ = json.NewEncoder(w).Encode(&schema.AskResult{Answer: "42"})
	})
	c := newClient(t, mux)

	answer, err := c.Ask(context.Background(), &schema.AskRequest{
		Query: "what is the total?", UserID: "user-1", ChatID: "chat-1", TopK: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", answer)
}

func TestDocumentIngestion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rag/process-chat-pdf/chat-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(&schema.ProcessResult{ChatID: "chat-1", NumChunks: 12})
	})
	mux.HandleFunc("/rag/embed-chat/chat-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(&schema.EmbedResult{ChatID: "chat-1", NumChunksStored: 12, CollectionName: "chat_embeddings"})
	})
	c := newClient(t, mux)

	processed, err := c.ProcessDocument(context.Background(), "chat-1")
	require.NoError(t, err)
	assert.Equal(t, 12, processed.NumChunks)

	embedded, err := c.EmbedChat(context.Background(), "chat-1")
	require.NoError(t, err)
	assert.Equal(t, 12, embedded.NumChunksStored)
	assert.Equal(t, "chat_embeddings", embedded.CollectionName)
}

func TestIdentityCachedIntoSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(&schema.Identity{UserID: "user-1", Email: "user@example.com", Username: "user"})
	})
	sessions := store.NewMemoryStore(store.WithSession(store.Session{AccessToken: "access"}))
	c := newClient(t, mux, client.WithSessionStore(sessions))

	identity, err := c.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)

	session, active := sessions.Lookup()
	require.True(t, active)
	require.NotNil(t, session.Identity)
	assert.Equal(t, "user@example.com", session.Identity.Email)
}
