package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"frontend_go/internal/domain"
)

// Profile fetches the account behind the given token. A rejected token
// surfaces as an error, which is what collapses a session back to anonymous.
func (c *Client) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	var out domain.Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, in domain.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/user/profile", token, in, nil)
}

// ChangePassword enforces the new-vs-confirmation match before any network
// call. The backend still validates the current password; this guard only
// stops an obviously wrong submission early.
func (c *Client) ChangePassword(ctx context.Context, token string, in domain.PasswordChange) error {
	if in.NewPassword != in.Confirm {
		return fmt.Errorf("%w: new password and confirmation do not match", domain.ErrValidation)
	}
	return c.do(ctx, http.MethodPut, "/user/password", token, in, nil)
}

// OwnItems lists the items reported by the authenticated user.
func (c *Client) OwnItems(ctx context.Context, token string) ([]domain.Item, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/user/items", token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Item](raw, "items")
}

type unreadResponse struct {
	UnreadCount int `json:"unread_count"`
}

// UnreadCount returns the number of unread messages, shown as the inbox badge.
func (c *Client) UnreadCount(ctx context.Context, token string) (int, error) {
	var out unreadResponse
	if err := c.do(ctx, http.MethodGet, "/user/messages/unread", token, nil, &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

func (c *Client) Conversations(ctx context.Context, token string) ([]domain.Conversation, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/user/messages/conversations", token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Conversation](raw, "conversations")
}

// Messages fetches the full thread with one counterpart, in the order the
// backend reports it.
func (c *Client) Messages(ctx context.Context, token string, userID int) ([]domain.Message, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/user/messages/"+strconv.Itoa(userID), token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Message](raw, "messages")
}

func (c *Client) SendMessage(ctx context.Context, token string, in domain.MessageInput) error {
	return c.do(ctx, http.MethodPost, "/user/messages", token, in, nil)
}

// CreateReport files an abuse report against another user.
func (c *Client) CreateReport(ctx context.Context, token string, in domain.ReportInput) error {
	return c.do(ctx, http.MethodPost, "/user/reports", token, in, nil)
}
