package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dgallion1/cragmap/internal/doctree"
)

// ExportMap maps node ids to temporary image URLs. Shapes the API could not
// render have no entry.
type ExportMap map[string]string

// Client talks to the design tool REST API for a single file.
type Client struct {
	fileID string
	http   *resty.Client
}

func NewClient(baseURL, token, fileID string, timeout time.Duration) *Client {
	return &Client{
		fileID: fileID,
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("X-Figma-Token", token).
			SetHeader("Accept", "application/json"),
	}
}

type fileResponse struct {
	Document *doctree.Node `json:"document"`
}

type imagesResponse struct {
	Err    *string            `json:"err"`
	Images map[string]*string `json:"images"`
}

// GetFile fetches the whole document tree of the file.
func (c *Client) GetFile(ctx context.Context) (*doctree.Node, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("file", c.fileID).
		Get("/v1/files/{file}")
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get file %s: status %d: %s", c.fileID, resp.StatusCode(), truncate(resp.String(), 1024))
	}

	var out fileResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode file: %w", err)
	}
	if out.Document == nil {
		return nil, fmt.Errorf("decode file: response has no document")
	}
	return out.Document, nil
}

// GetImages resolves every id to an SVG export URL in a single request.
func (c *Client) GetImages(ctx context.Context, ids []string) (ExportMap, error) {
	if len(ids) == 0 {
		return ExportMap{}, nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("file", c.fileID).
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetQueryParam("format", "svg").
		Get("/v1/images/{file}")
	if err != nil {
		return nil, fmt.Errorf("get images: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get images %s: status %d: %s", c.fileID, resp.StatusCode(), truncate(resp.String(), 1024))
	}

	var out imagesResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if out.Err != nil && *out.Err != "" {
		return nil, fmt.Errorf("get images %s: %s", c.fileID, *out.Err)
	}
	if out.Images == nil {
		return nil, fmt.Errorf("decode images: response has no images")
	}

	exports := make(ExportMap, len(out.Images))
	for id, u := range out.Images {
		if u != nil && *u != "" {
			exports[id] = *u
		}
	}
	return exports, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
