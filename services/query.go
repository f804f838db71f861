package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/naseemhussainn/news-aggregator-api/models"
)

const DefaultPerPage = 15

// ArticleFilters is the composable filter bundle for article listings.
// A zero field is a no-op; set fields combine with AND.
type ArticleFilters struct {
	Keyword       string
	Date          string // YYYY-MM-DD
	CategoryID    uint
	SourceID      uint
	AuthorID      uint
	SortBy        string
	SortDirection string
	Page          int
	PerPage       int
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	LastPage    int   `json:"last_page"`
	Total       int64 `json:"total"`
}

var sortableFields = map[string]bool{
	"published_at": true,
	"created_at":   true,
	"title":        true,
	"id":           true,
}

// ListArticles applies the filter bundle and returns one page plus its
// pagination metadata.
func ListArticles(db *gorm.DB, f ArticleFilters) ([]models.Article, Pagination, error) {
	q := db.Model(&models.Article{})
	q = applyContentFilters(q, f)
	if f.CategoryID != 0 {
		q = q.Where("articles.category_id = ?", f.CategoryID)
	}
	if f.SourceID != 0 {
		q = q.Where("articles.source_id = ?", f.SourceID)
	}
	if f.AuthorID != 0 {
		q = q.Where("articles.id IN (SELECT article_id FROM article_authors WHERE author_id = ?)", f.AuthorID)
	}
	return paginate(q, f)
}

func applyContentFilters(q *gorm.DB, f ArticleFilters) *gorm.DB {
	if f.Keyword != "" {
		kw := "%" + strings.ToLower(f.Keyword) + "%"
		q = q.Where(
			"LOWER(articles.title) LIKE ? OR LOWER(articles.description) LIKE ? OR LOWER(articles.content) LIKE ?",
			kw, kw, kw,
		)
	}
	if f.Date != "" {
		q = q.Where("date(articles.published_at) = ?", f.Date)
	}
	return q
}

func paginate(q *gorm.DB, f ArticleFilters) ([]models.Article, Pagination, error) {
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > 100 {
		perPage = 100
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	var articles []models.Article
	err := q.
		Preload("Source").
		Preload("Category").
		Preload("Authors").
		Order(orderClause(f)).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&articles).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	meta := Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		LastPage:    lastPage,
		Total:       total,
	}
	return articles, meta, nil
}

func orderClause(f ArticleFilters) string {
	field := f.SortBy
	if !sortableFields[field] {
		field = "published_at"
	}
	direction := strings.ToLower(f.SortDirection)
	if direction != "asc" {
		direction = "desc"
	}
	return "articles." + field + " " + direction
}
