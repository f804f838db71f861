package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/naseemhussainn/news-aggregator-api/config"
	"github.com/naseemhussainn/news-aggregator-api/logger"
)

const (
	nytimesSiteURL = "https://www.nytimes.com"
	nytimesCDNBase = "https://static01.nyt.com/"
)

type NYTimesClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type nytimesResponse struct {
	Response struct {
		Docs []struct {
			Abstract string `json:"abstract"`
			WebURL   string `json:"web_url"`
			Headline struct {
				Main string `json:"main"`
			} `json:"headline"`
			PubDate     string `json:"pub_date"`
			SectionName string `json:"section_name"`
			Byline      struct {
				Person []struct {
					Firstname string `json:"firstname"`
					Lastname  string `json:"lastname"`
				} `json:"person"`
			} `json:"byline"`
			Multimedia []struct {
				URL string `json:"url"`
			} `json:"multimedia"`
		} `json:"docs"`
	} `json:"response"`
}

func NewNYTimesClient(cfg *config.Config) *NYTimesClient {
	return &NYTimesClient{
		apiKey:  cfg.NYTimesKey,
		baseURL: cfg.NYTimesBaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *NYTimesClient) Name() string { return "nytimes" }

func (c *NYTimesClient) Fetch(ctx context.Context) []RawArticle {
	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("sort", "newest")
	params.Set("page", "0")
	params.Set("fl", "headline,abstract,web_url,pub_date,byline,section_name,multimedia")

	var resp nytimesResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/search/v2/articlesearch.json?"+params.Encode(), &resp); err != nil {
		logger.Error("failed to fetch articles from NY Times", "error", err)
		return nil
	}

	out := make([]RawArticle, 0, len(resp.Response.Docs))
	for _, d := range resp.Response.Docs {
		if d.Headline.Main == "" || d.WebURL == "" {
			logger.Warn("skipping NY Times article with missing title or url", "url", d.WebURL)
			continue
		}

		category := d.SectionName
		if category == "" {
			category = "General"
		}

		var imageURL string
		for _, media := range d.Multimedia {
			if media.URL != "" {
				imageURL = nytimesCDNBase + media.URL
				break
			}
		}

		// the article search endpoint never returns the full body
		raw := RawArticle{
			Title:        d.Headline.Main,
			Description:  d.Abstract,
			URL:          d.WebURL,
			ImageURL:     imageURL,
			ExternalID:   hashURL(d.WebURL),
			PublishedAt:  d.PubDate,
			SourceName:   "The New York Times",
			SourceURL:    nytimesSiteURL,
			CategoryName: category,
		}
		for _, person := range d.Byline.Person {
			name := strings.TrimSpace(person.Firstname + " " + person.Lastname)
			if name != "" {
				raw.AuthorNames = append(raw.AuthorNames, name)
			}
		}
		out = append(out, raw)
	}
	return out
}

var _ Provider = (*NYTimesClient)(nil)
