package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RawArticle is the provider-agnostic shape every adapter maps its feed
// onto before the ingestion engine sees it.
type RawArticle struct {
	Title       string
	Description string
	Content     string
	URL         string
	ImageURL    string
	ExternalID  string
	PublishedAt string

	SourceName  string
	SourceAPIID string
	SourceURL   string

	CategoryName string
	AuthorNames  []string
}

// Provider fetches one external feed. Fetch is best-effort: transport and
// HTTP failures are logged inside the adapter and reported as an empty
// slice so one broken feed never aborts a fetch-all run.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) []RawArticle
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// hashURL derives a stable external id for providers that expose no
// per-article identifier.
func hashURL(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}
