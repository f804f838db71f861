package cache

import (
	"fmt"
	"strings"
)

// KeyParams enumerates every query parameter that may influence a cached
// response. Keys are built from these fields in a fixed order, so two
// requests with the same recognized parameters always share a cache entry
// regardless of how the query string was spelled.
type KeyParams struct {
	Keyword       string
	Date          string
	CategoryID    uint
	SourceID      uint
	AuthorID      uint
	SortBy        string
	SortDirection string
	Page          int
	PerPage       int
}

func ArticlesKey(p KeyParams) string {
	return "articles|" + paramsKey(p)
}

func FeedKey(userID uint, p KeyParams) string {
	return fmt.Sprintf("feed|user=%d|%s", userID, paramsKey(p))
}

func ArticleKey(id uint) string {
	return fmt.Sprintf("article|id=%d", id)
}

func paramsKey(p KeyParams) string {
	parts := []string{
		"keyword=" + p.Keyword,
		"date=" + p.Date,
		fmt.Sprintf("category=%d", p.CategoryID),
		fmt.Sprintf("source=%d", p.SourceID),
		fmt.Sprintf("author=%d", p.AuthorID),
		"sort=" + p.SortBy,
		"direction=" + p.SortDirection,
		fmt.Sprintf("page=%d", p.Page),
		fmt.Sprintf("per_page=%d", p.PerPage),
	}
	return strings.Join(parts, "|")
}
