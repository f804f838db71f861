package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/naseemhussainn/news-aggregator-api/config"
	"github.com/naseemhussainn/news-aggregator-api/logger"
)

const guardianSiteURL = "https://www.theguardian.com"

type GuardianClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type guardianResponse struct {
	Response struct {
		Results []struct {
			ID                 string `json:"id"`
			SectionName        string `json:"sectionName"`
			WebPublicationDate string `json:"webPublicationDate"`
			WebTitle           string `json:"webTitle"`
			WebURL             string `json:"webUrl"`
			Fields             struct {
				TrailText string `json:"trailText"`
				Body      string `json:"body"`
				Thumbnail string `json:"thumbnail"`
			} `json:"fields"`
			Tags []struct {
				Type     string `json:"type"`
				WebTitle string `json:"webTitle"`
			} `json:"tags"`
		} `json:"results"`
	} `json:"response"`
}

func NewGuardianClient(cfg *config.Config) *GuardianClient {
	return &GuardianClient{
		apiKey:  cfg.GuardianKey,
		baseURL: cfg.GuardianBaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *GuardianClient) Name() string { return "guardian" }

func (c *GuardianClient) Fetch(ctx context.Context) []RawArticle {
	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("page-size", "50")
	params.Set("show-fields", "headline,trailText,body,thumbnail")
	params.Set("show-tags", "contributor")
	params.Set("show-section", "true")

	var resp guardianResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/search?"+params.Encode(), &resp); err != nil {
		logger.Error("failed to fetch articles from The Guardian", "error", err)
		return nil
	}

	out := make([]RawArticle, 0, len(resp.Response.Results))
	for _, r := range resp.Response.Results {
		if r.WebTitle == "" || r.WebURL == "" {
			logger.Warn("skipping Guardian article with missing title or url", "url", r.WebURL)
			continue
		}

		category := r.SectionName
		if category == "" {
			category = "General"
		}
		raw := RawArticle{
			Title:        r.WebTitle,
			Description:  r.Fields.TrailText,
			Content:      r.Fields.Body,
			URL:          r.WebURL,
			ImageURL:     r.Fields.Thumbnail,
			ExternalID:   r.ID,
			PublishedAt:  r.WebPublicationDate,
			SourceName:   "The Guardian",
			SourceURL:    guardianSiteURL,
			CategoryName: category,
		}
		for _, tag := range r.Tags {
			if tag.Type == "contributor" && tag.WebTitle != "" {
				raw.AuthorNames = append(raw.AuthorNames, tag.WebTitle)
			}
		}
		out = append(out, raw)
	}
	return out
}

var _ Provider = (*GuardianClient)(nil)
