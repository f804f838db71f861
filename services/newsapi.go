package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/naseemhussainn/news-aggregator-api/config"
	"github.com/naseemhussainn/news-aggregator-api/logger"
)

type NewsAPIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

func NewNewsAPIClient(cfg *config.Config) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:  cfg.NewsAPIKey,
		baseURL: cfg.NewsAPIBaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *NewsAPIClient) Name() string { return "newsapi" }

func (c *NewsAPIClient) Fetch(ctx context.Context) []RawArticle {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("language", "en")
	params.Set("pageSize", "100")

	var resp newsAPIResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/top-headlines?"+params.Encode(), &resp); err != nil {
		logger.Error("failed to fetch articles from NewsAPI", "error", err)
		return nil
	}

	out := make([]RawArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" || a.URL == "" {
			logger.Warn("skipping NewsAPI article with missing title or url", "url", a.URL)
			continue
		}

		// NewsAPI has no category and no stable per-article id
		sourceName := a.Source.Name
		if sourceName == "" {
			sourceName = "Unknown"
		}
		raw := RawArticle{
			Title:        a.Title,
			Description:  a.Description,
			Content:      a.Content,
			URL:          a.URL,
			ImageURL:     a.URLToImage,
			ExternalID:   hashURL(a.URL),
			PublishedAt:  a.PublishedAt,
			SourceName:   sourceName,
			SourceAPIID:  a.Source.ID,
			CategoryName: "General",
		}
		if a.Author != "" {
			raw.AuthorNames = []string{a.Author}
		}
		out = append(out, raw)
	}
	return out
}

var _ Provider = (*NewsAPIClient)(nil)
