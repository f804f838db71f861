package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naseemhussainn/news-aggregator-api/models"
	"github.com/naseemhussainn/news-aggregator-api/services"
)

func seedIngested(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	ing := services.NewIngester(db)
	raws := make([]services.RawArticle, 0, n)
	for i := 1; i <= n; i++ {
		raws = append(raws, services.RawArticle{
			Title:        fmt.Sprintf("Story %02d", i),
			Description:  fmt.Sprintf("Summary of story %d", i),
			URL:          fmt.Sprintf("https://bbc.co.uk/news/story-%d", i),
			ExternalID:   fmt.Sprintf("ext-%d", i),
			PublishedAt:  time.Date(2026, 8, i, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
			SourceName:   "BBC News",
			CategoryName: "General",
			AuthorNames:  []string{"Alex Reporter"},
		})
	}
	if saved := ing.Ingest("newsapi", raws); saved != n {
		t.Fatalf("seeded %d articles, want %d", saved, n)
	}
}

func TestArticlesIndexServesIngestedData(t *testing.T) {
	r, db := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")
	seedIngested(t, db, 3)

	w := doJSON(t, r, http.MethodGet, "/api/articles", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)

	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("response missing data array: %v", body)
	}
	if len(data) != 3 {
		t.Fatalf("len(data) = %d, want 3", len(data))
	}

	first, _ := data[0].(map[string]any)
	// default sort is published_at desc, so the newest story comes first
	if first["title"] != "Story 03" {
		t.Errorf("first title = %v, want Story 03", first["title"])
	}
	source, _ := first["source"].(map[string]any)
	if source["name"] != "BBC News" {
		t.Errorf("source name = %v, want BBC News", source["name"])
	}
	category, _ := first["category"].(map[string]any)
	if category["slug"] != "general" {
		t.Errorf("category slug = %v, want general", category["slug"])
	}
	authors, _ := first["authors"].([]any)
	if len(authors) != 1 {
		t.Fatalf("authors = %v, want one entry", first["authors"])
	}

	meta, _ := body["meta"].(map[string]any)
	if meta["total"] != float64(3) {
		t.Errorf("meta.total = %v, want 3", meta["total"])
	}
}

func TestArticlesIndexEmpty(t *testing.T) {
	r, _ := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/articles", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("data must be an array even when empty: %v", body)
	}
	if len(data) != 0 {
		t.Errorf("len(data) = %d, want 0", len(data))
	}
}

func TestArticlesIndexPagination(t *testing.T) {
	r, db := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")
	seedIngested(t, db, 5)

	w := doJSON(t, r, http.MethodGet, "/api/articles?per_page=2&page=2", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	data, _ := body["data"].([]any)
	if len(data) != 2 {
		t.Errorf("len(data) = %d, want 2", len(data))
	}
	meta, _ := body["meta"].(map[string]any)
	if meta["current_page"] != float64(2) {
		t.Errorf("meta.current_page = %v, want 2", meta["current_page"])
	}
	if meta["last_page"] != float64(3) {
		t.Errorf("meta.last_page = %v, want 3", meta["last_page"])
	}
	if meta["total"] != float64(5) {
		t.Errorf("meta.total = %v, want 5", meta["total"])
	}
}

func TestArticlesIndexKeywordFilter(t *testing.T) {
	r, db := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")
	seedIngested(t, db, 3)

	w := doJSON(t, r, http.MethodGet, "/api/articles?keyword=story+02", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	data, _ := body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("len(data) = %d, want 1: %v", len(data), body)
	}
	first, _ := data[0].(map[string]any)
	if first["title"] != "Story 02" {
		t.Errorf("title = %v, want Story 02", first["title"])
	}
}

func TestArticleShow(t *testing.T) {
	r, db := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")
	seedIngested(t, db, 1)

	var article models.Article
	if err := db.First(&article).Error; err != nil {
		t.Fatalf("load seeded article: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/articles/%d", article.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	data, _ := body["data"].(map[string]any)
	if data["title"] != "Story 01" {
		t.Errorf("title = %v, want Story 01", data["title"])
	}
	if data["url"] != "https://bbc.co.uk/news/story-1" {
		t.Errorf("url = %v", data["url"])
	}
}

func TestArticleShowNotFound(t *testing.T) {
	r, _ := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/articles/9999", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Article not found" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestArticlesIndexCachesResults(t *testing.T) {
	r, db := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")
	seedIngested(t, db, 2)

	w := doJSON(t, r, http.MethodGet, "/api/articles", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	// a new article inside the TTL is invisible until the entry expires
	seedMore := []services.RawArticle{{
		Title:        "Late Story",
		URL:          "https://bbc.co.uk/news/late-story",
		PublishedAt:  time.Now().UTC().Format(time.RFC3339),
		SourceName:   "BBC News",
		CategoryName: "General",
	}}
	services.NewIngester(db).Ingest("newsapi", seedMore)

	w = doJSON(t, r, http.MethodGet, "/api/articles", token, nil)
	body := decodeBody(t, w)
	data, _ := body["data"].([]any)
	if len(data) != 2 {
		t.Errorf("cached len(data) = %d, want 2", len(data))
	}

	// a different query string is a different cache key and sees fresh data
	w = doJSON(t, r, http.MethodGet, "/api/articles?per_page=50", token, nil)
	body = decodeBody(t, w)
	data, _ = body["data"].([]any)
	if len(data) != 3 {
		t.Errorf("uncached len(data) = %d, want 3", len(data))
	}
}

func TestFeedHonorsCategoryPreference(t *testing.T) {
	r, db := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")

	ing := services.NewIngester(db)
	ing.Ingest("newsapi", []services.RawArticle{
		{Title: "Tech Story", URL: "https://example.com/tech", SourceName: "BBC News", CategoryName: "Technology"},
		{Title: "Sport Story", URL: "https://example.com/sport", SourceName: "BBC News", CategoryName: "Sport"},
	})

	var tech models.Category
	if err := db.First(&tech, "slug = ?", "technology").Error; err != nil {
		t.Fatalf("load category: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/preferences/categories", token, gin.H{
		"category_ids": []uint{tech.ID},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("set preferences: status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/feed", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("feed: status = %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	data, _ := body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("len(data) = %d, want 1: %v", len(data), body)
	}
	first, _ := data[0].(map[string]any)
	if first["title"] != "Tech Story" {
		t.Errorf("title = %v, want Tech Story", first["title"])
	}
}

func TestFeedWithoutPreferencesIsUnrestricted(t *testing.T) {
	r, db := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")
	seedIngested(t, db, 4)

	w := doJSON(t, r, http.MethodGet, "/api/feed", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	data, _ := body["data"].([]any)
	if len(data) != 4 {
		t.Errorf("len(data) = %d, want 4", len(data))
	}
}

func TestReingestDoesNotDuplicate(t *testing.T) {
	r, db := newTestApp(t)
	token := registerUser(t, r, "reader@example.com")
	seedIngested(t, db, 2)

	ing := services.NewIngester(db)
	ing.Ingest("newsapi", []services.RawArticle{{
		Title:        "Story 01",
		URL:          "https://bbc.co.uk/news/story-1",
		SourceName:   "BBC News",
		CategoryName: "General",
	}})

	w := doJSON(t, r, http.MethodGet, "/api/articles", token, nil)
	body := decodeBody(t, w)
	meta, _ := body["meta"].(map[string]any)
	if meta["total"] != float64(2) {
		t.Errorf("meta.total = %v, want 2", meta["total"])
	}
}
