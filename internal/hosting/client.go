package hosting

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/artifact-hub/relcheck/internal/registry"
)

const (
	userAgent = "artifact-hub-version-checker/1.0"
	perPage   = 100
	maxPages  = 6
)

// Client lists release tags from the hosting APIs. Requests share one
// HTTP client with a fixed per-request timeout; there is no retry.
type Client struct {
	httpClient *http.Client
	token      string
	githubAPI  string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		token:      os.Getenv("GITHUB_TOKEN"),
		githubAPI:  "https://api.github.com",
	}
}

// Tags returns the tag names for pkg, walking pages until the API
// returns an empty or non-array page or the page limit is reached.
func (c *Client) Tags(pkg registry.Package) ([]string, error) {
	base, err := c.tagsURL(pkg)
	if err != nil {
		return nil, err
	}
	var tags []string
	for page := 1; page <= maxPages; page++ {
		u := fmt.Sprintf("%s?per_page=%d&page=%d", base, perPage, page)
		data, err := c.fetchJSON(u, pkg.Host == "github")
		if err != nil {
			return nil, err
		}
		items, ok := data.([]any)
		if !ok || len(items) == 0 {
			break
		}
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if name, ok := obj["name"].(string); ok {
				tags = append(tags, name)
			}
		}
	}
	return tags, nil
}

func (c *Client) tagsURL(pkg registry.Package) (string, error) {
	switch pkg.Host {
	case "github":
		return c.githubAPI + "/repos/" + pkg.Repo + "/tags", nil
	case "gitlab":
		return pkg.BaseURL + "/api/v4/projects/" + url.PathEscape(pkg.Project) + "/repository/tags", nil
	}
	return "", fmt.Errorf("unknown host %q for package %s", pkg.Host, pkg.Name)
}

func (c *Client) fetchJSON(u string, auth bool) (any, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if auth {
		req.Header.Set("Accept", "application/vnd.github+json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%s: HTTP %d %s", u, resp.StatusCode, string(body))
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%s: %w", u, err)
	}
	return data, nil
}
