package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"frontend_go/internal/domain"
)

// Upload is an image attached to an item report.
type Upload struct {
	Filename string
	Content  io.Reader
}

// List fetches the public item feed. No token required.
func (c *Client) List(ctx context.Context) ([]domain.Item, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/items", "", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Item](raw, "items")
}

// Search runs a free-text query over the public item feed.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Item, error) {
	var raw json.RawMessage
	path := "/items/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Item](raw, "items")
}

// Get fetches a single item. No token required.
func (c *Client) Get(ctx context.Context, itemID int) (*domain.Item, error) {
	var out domain.Item
	if err := c.do(ctx, http.MethodGet, "/items/"+strconv.Itoa(itemID), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReportLost submits a lost-item report, with a multipart body when an image
// is attached.
func (c *Client) ReportLost(ctx context.Context, token string, in domain.ItemReport, image *Upload) (*domain.Item, error) {
	return c.reportItem(ctx, token, "/items/lost", in, image)
}

// ReportFound submits a found-item report, with a multipart body when an
// image is attached.
func (c *Client) ReportFound(ctx context.Context, token string, in domain.ItemReport, image *Upload) (*domain.Item, error) {
	return c.reportItem(ctx, token, "/items/found", in, image)
}

// UpdateStatus changes an item's status. The backend restricts this to the
// item's owner; the returned item is the server's view after the change.
func (c *Client) UpdateStatus(ctx context.Context, token string, itemID int, status string) (*domain.Item, error) {
	var out domain.Item
	path := "/items/" + strconv.Itoa(itemID) + "/status"
	if err := c.do(ctx, http.MethodPut, path, token, domain.StatusUpdate{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type reportItemResponse struct {
	Message string       `json:"message"`
	ItemID  int          `json:"item_id"`
	Item    *domain.Item `json:"item,omitempty"`
}

func (c *Client) reportItem(ctx context.Context, token, path string, in domain.ItemReport, image *Upload) (*domain.Item, error) {
	var out reportItemResponse
	var err error
	if image != nil {
		err = c.doMultipart(ctx, path, token, in, image, &out)
	} else {
		err = c.do(ctx, http.MethodPost, path, token, in, &out)
	}
	if err != nil {
		return nil, err
	}

	// Older backend revisions answer with {message, item_id} only; fetch the
	// created item so callers always see the server's canonical copy.
	if out.Item != nil {
		return out.Item, nil
	}
	return c.Get(ctx, out.ItemID)
}

func (c *Client) doMultipart(ctx context.Context, path, token string, in domain.ItemReport, image *Upload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"location":    in.Location,
	}
	if in.LostTime != nil {
		fields["lost_time"] = in.LostTime.Format(time.RFC3339)
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return &Error{Message: fmt.Sprintf("encoding request: %v", err)}
		}
	}

	part, err := mw.CreateFormFile("image", image.Filename)
	if err != nil {
		return &Error{Message: fmt.Sprintf("encoding request: %v", err)}
	}
	if _, err := io.Copy(part, image.Content); err != nil {
		return &Error{Message: fmt.Sprintf("encoding request: %v", err)}
	}
	if err := mw.Close(); err != nil {
		return &Error{Message: fmt.Sprintf("encoding request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setCommonHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}
