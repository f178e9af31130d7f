// Package client is the REST client for the SumerQA chat/RAG service: chats,
// messages, document ingestion, retrieval queries and the identity check.
// It stays deliberately thin; all authentication behaviour lives in the
// auth/transport sub-package, which the chatkit package wires into the HTTP
// client used here.
package client
