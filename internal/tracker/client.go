package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/utils"
)

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RawItem is one record as fetched from the tracker, before gamification.
type RawItem struct {
	ID      string
	Kind    domain.ItemKind
	Name    string
	Status  string
	VStatus string
	Owner   string
}

// Transport fetches the raw active item snapshot from the tracker.
type Transport interface {
	FetchItems(ctx context.Context) ([]RawItem, error)
}

// ClientConfig holds tracker credentials and addressing.
type ClientConfig struct {
	BaseURL     string
	Token       string
	WorkspaceID string
	UserName    string
}

// Client fetches stories and bugs from the TAPD REST API.
type Client struct {
	cfg  ClientConfig
	http Doer
}

// NewClient creates a tracker client. A nil doer falls back to a default
// http.Client with a 30s timeout.
func NewClient(cfg ClientConfig, doer Doer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, http: doer}
}

// Wire envelopes. The tracker nests each record under its kind name.
type storyEnvelope struct {
	Data []struct {
		Story storyRecord `json:"Story"`
	} `json:"data"`
}

type storyRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	VStatus string `json:"v_status"`
	Owner   string `json:"owner"`
}

type bugEnvelope struct {
	Data []struct {
		Bug bugRecord `json:"Bug"`
	} `json:"data"`
}

type bugRecord struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Owner  string `json:"owner"`
}

// FetchItems returns the current story and bug snapshot for the configured
// user. A missing token is not an error: the fetch is skipped and an empty
// snapshot is returned.
func (c *Client) FetchItems(ctx context.Context) ([]RawItem, error) {
	if c.cfg.Token == "" {
		logger.FromContext(ctx).Warn(LogMsgTokenMissing)
		return nil, nil
	}

	stories, err := c.fetchStories(ctx)
	if err != nil {
		return nil, err
	}

	bugs, err := c.fetchBugs(ctx)
	if err != nil {
		return nil, err
	}

	return append(stories, bugs...), nil
}

func (c *Client) fetchStories(ctx context.Context) ([]RawItem, error) {
	body, err := c.get(ctx, c.storiesURL())
	if err != nil {
		return nil, err
	}

	var envelope storyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding stories: %v", domain.ErrFetchFailed, err)
	}

	items := make([]RawItem, 0, len(envelope.Data))
	for _, entry := range envelope.Data {
		rec := entry.Story
		items = append(items, RawItem{
			ID:      rec.ID,
			Kind:    domain.KindStory,
			Name:    rec.Name,
			Status:  rec.Status,
			VStatus: rec.VStatus,
			Owner:   rec.Owner,
		})
	}
	return items, nil
}

func (c *Client) fetchBugs(ctx context.Context) ([]RawItem, error) {
	body, err := c.get(ctx, c.bugsURL())
	if err != nil {
		return nil, err
	}

	var envelope bugEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding bugs: %v", domain.ErrFetchFailed, err)
	}

	items := make([]RawItem, 0, len(envelope.Data))
	for _, entry := range envelope.Data {
		rec := entry.Bug
		items = append(items, RawItem{
			ID:     rec.ID,
			Kind:   domain.KindBug,
			Name:   rec.Title,
			Status: rec.Status,
			Owner:  rec.Owner,
		})
	}
	return items, nil
}

func (c *Client) storiesURL() string {
	q := url.Values{}
	q.Set("workspace_id", c.cfg.WorkspaceID)
	q.Set("limit", strconv.Itoa(FetchLimit))
	q.Set("with_v_status", "1")
	q.Set("fields", APIFields)
	q.Set("v_status", strings.Join(StatusesToFetch, "|"))
	if c.cfg.UserName != "" {
		q.Set("owner", c.cfg.UserName)
	}
	return c.cfg.BaseURL + "/stories?" + q.Encode()
}

func (c *Client) bugsURL() string {
	q := url.Values{}
	q.Set("workspace_id", c.cfg.WorkspaceID)
	q.Set("limit", strconv.Itoa(FetchLimit))
	q.Set("fields", BugAPIFields)
	if c.cfg.UserName != "" {
		q.Set("owner", c.cfg.UserName)
	}
	return c.cfg.BaseURL + "/bugs?" + q.Encode()
}

// get issues an authenticated GET and classifies failures. An HTML payload
// or a non-2xx status means the token was rejected; everything else is a
// generic fetch failure.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	logger.FromContext(ctx).Debug("Fetching tracker data",
		"path", req.URL.Path,
		"token", utils.MaskToken(c.cfg.Token))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return nil, fmt.Errorf("%w: got HTML response", domain.ErrAuthFailed)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrAuthFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrFetchFailed, err)
	}
	return body, nil
}
