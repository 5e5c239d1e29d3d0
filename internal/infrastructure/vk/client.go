// Package vk reads community walls through the VK API.
package vk

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

const (
	DefaultBaseURL    = "https://api.vk.com/method"
	DefaultAPIVersion = "5.131"
	maxWallCount      = 100
)

var _ output.WallFetcher = (*Client)(nil)

// APIError is an error object returned by the VK API with HTTP 200.
type APIError struct {
	Code    int64
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vk api error %d: %s", e.Code, e.Message)
}

type Config struct {
	Token      string
	APIVersion string
	BaseURL    string
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, http: httpClient, logger: logger}
}

// FetchWall returns up to count of the most recent posts of group. Reposts
// with an empty caption take the text of the reposted post.
func (c *Client) FetchWall(ctx context.Context, group entities.Group, count int) ([]entities.Post, error) {
	if count <= 0 || count > maxWallCount {
		count = maxWallCount
	}
	q := url.Values{}
	q.Set("owner_id", strconv.FormatInt(-group.ID, 10))
	q.Set("count", strconv.Itoa(count))
	q.Set("filter", "owner")
	q.Set("access_token", c.cfg.Token)
	q.Set("v", c.cfg.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/wall.get?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build wall.get request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wall.get %s: %w", group.Name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read wall.get response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wall.get %s: status %d", group.Name, resp.StatusCode)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("wall.get %s: malformed response", group.Name)
	}
	if e := gjson.GetBytes(raw, "error"); e.Exists() {
		return nil, &APIError{Code: e.Get("error_code").Int(), Message: e.Get("error_msg").String()}
	}

	items := gjson.GetBytes(raw, "response.items").Array()
	posts := make([]entities.Post, 0, len(items))
	for _, item := range items {
		text := item.Get("text").String()
		if text == "" {
			text = item.Get("copy_history.0.text").String()
		}
		posts = append(posts, entities.Post{
			ID:          item.Get("id").Int(),
			OwnerID:     item.Get("owner_id").Int(),
			Text:        text,
			Attachments: len(item.Get("attachments").Array()),
		})
	}
	c.logger.Debug("wall fetched", "group", group.Name, "posts", len(posts))
	return posts, nil
}
