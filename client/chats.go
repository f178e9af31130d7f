package client

import (
	"context"
	"net/url"

	"github.com/sumerqa/chatkit/schema"
)

// CreateChat creates a chat owned by userID and returns the assigned chat id.
func (c *Client) CreateChat(ctx context.Context, userID string) (string, error) {
	result := &schema.CreateChatResult{}
	err := c.post(ctx, "/chatsCreate", &schema.CreateChatRequest{UserID: userID}, result)
	if err != nil {
		return "", err
	}
	c.logger.Debug().Str("chat_id", result.ChatID).Msg("chat created")
	return result.ChatID, nil
}

// ListChats lists userID's chats, most recently updated first.
func (c *Client) ListChats(ctx context.Context, userID string) ([]schema.Chat, error) {
	var chats []schema.Chat
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/chats", &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// DeleteChat removes a chat, its messages and any attached document.
func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	return c.del(ctx, "/chats/"+url.PathEscape(chatID), nil)
}
