package client

import (
	"context"
	"net/url"

	"github.com/sumerqa/chatkit/schema"
)

// ProcessDocument extracts and chunks the chat's uploaded document.
func (c *Client) ProcessDocument(ctx context.Context, chatID string) (*schema.ProcessResult, error) {
	result := &schema.ProcessResult{}
	if err := c.post(ctx, "/rag/process-chat-pdf/"+url.PathEscape(chatID), nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// EmbedChat embeds the chat's document chunks into the retrieval index.
func (c *Client) EmbedChat(ctx context.Context, chatID string) (*schema.EmbedResult, error) {
	result := &schema.EmbedResult{}
	if err := c.post(ctx, "/rag/embed-chat/"+url.PathEscape(chatID), nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Ask queries the retrieval backend within the chat's document context and
// returns the generated answer.
func (c *Client) Ask(ctx context.Context, request *schema.AskRequest) (string, error) {
	result := &schema.AskResult{}
	if err := c.post(ctx, "/rag/ask", request, result); err != nil {
		return "", err
	}
	return result.Answer, nil
}
