package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sumerqa/chatkit/schema"
)

// maxMessageLength matches the service-side content cap.
const maxMessageLength = 5000

// ListOptions controls message paging. The zero value uses the service
// defaults (limit 200, no skip).
type ListOptions struct {
	Limit int
	Skip  int
}

// SendMessage appends a message to a chat. Role must be schema.RoleUser or
// schema.RoleBot; content is trimmed and capped the same way the service
// validates it, so malformed messages never reach the wire.
func (c *Client) SendMessage(ctx context.Context, chatID, role, content string) (string, error) {
	if role != schema.RoleUser && role != schema.RoleBot {
		return "", errors.Errorf("invalid role %q", role)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errors.New("message content was empty")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return "", errors.Errorf("message content exceeds %v characters", maxMessageLength)
	}
	result := &schema.CreateMessageResult{}
	err := c.post(ctx, "/chats/"+url.PathEscape(chatID)+"/messages",
		&schema.CreateMessageRequest{Role: role, Content: content}, result)
	if err != nil {
		return "", err
	}
	return result.MessageID, nil
}

// Messages returns a chat's messages in chronological order.
func (c *Client) Messages(ctx context.Context, chatID string, options ListOptions) ([]schema.Message, error) {
	path := "/chats/" + url.PathEscape(chatID) + "/messages"
	query := url.Values{}
	if options.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", options.Limit))
	}
	if options.Skip > 0 {
		query.Set("skip", fmt.Sprintf("%d", options.Skip))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var messages []schema.Message
	if err := c.get(ctx, path, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
