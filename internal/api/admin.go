package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"frontend_go/internal/domain"
)

// The admin family requires a token, but whether the caller's role actually
// permits an action is decided by the backend alone.

func (c *Client) Users(ctx context.Context, token string) ([]domain.AdminUser, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.AdminUser](raw, "users")
}

func (c *Client) UpdateUserRole(ctx context.Context, token string, userID int, role string) error {
	path := "/admin/users/" + strconv.Itoa(userID) + "/role"
	return c.do(ctx, http.MethodPut, path, token, domain.RoleUpdate{Role: role}, nil)
}

func (c *Client) Reports(ctx context.Context, token string) ([]domain.Report, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/admin/reports", token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Report](raw, "reports")
}

func (c *Client) UpdateReportStatus(ctx context.Context, token string, reportID int, status, comment string) error {
	path := "/admin/reports/" + strconv.Itoa(reportID) + "/status"
	return c.do(ctx, http.MethodPut, path, token, domain.StatusUpdate{Status: status, Comment: comment}, nil)
}

func (c *Client) Stats(ctx context.Context, token string) (*domain.Stats, error) {
	var out domain.Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
