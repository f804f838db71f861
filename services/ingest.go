package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/naseemhussainn/news-aggregator-api/logger"
	"github.com/naseemhussainn/news-aggregator-api/models"
)

// Ingester normalizes raw provider records into the store. Category slugs
// and article URLs carry unique indexes and are written with ON CONFLICT
// DO NOTHING, so concurrent runs degrade to no-ops instead of duplicates.
// Source rows are only guarded by find-or-create; a race there can leave
// an extra source row, which is accepted.
type Ingester struct {
	db *gorm.DB
}

func NewIngester(db *gorm.DB) *Ingester {
	return &Ingester{db: db}
}

// Ingest processes the batch one record at a time and returns the number
// of articles actually created by this call. A failure on one record is
// logged and never aborts the rest of the batch.
func (in *Ingester) Ingest(provider string, raw []RawArticle) int {
	saved := 0
	for _, r := range raw {
		created, err := in.ingestOne(provider, r)
		if err != nil {
			logger.Error("failed to process article", "provider", provider, "url", r.URL, "error", err)
			continue
		}
		if created {
			saved++
		}
	}
	return saved
}

func (in *Ingester) ingestOne(provider string, r RawArticle) (bool, error) {
	if r.Title == "" || r.URL == "" {
		logger.Warn("skipping article with missing title or url", "provider", provider, "url", r.URL)
		return false, nil
	}

	source, err := in.findOrCreateSource(provider, r)
	if err != nil {
		return false, err
	}

	category, err := in.findOrCreateCategory(r.CategoryName)
	if err != nil {
		return false, err
	}

	// An already-ingested URL is skipped outright; stale fields are never
	// refreshed by a later fetch.
	var existing int64
	if err := in.db.Model(&models.Article{}).Where("url = ?", r.URL).Count(&existing).Error; err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	publishedAt := parsePublishedAt(r.PublishedAt)
	article := models.Article{
		Title:       r.Title,
		Description: optional(r.Description),
		Content:     optional(r.Content),
		URL:         r.URL,
		ImageURL:    optional(r.ImageURL),
		ExternalID:  optional(r.ExternalID),
		PublishedAt: &publishedAt,
		SourceID:    source.ID,
		CategoryID:  &category.ID,
	}
	res := in.db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "url"}}, DoNothing: true}).
		Create(&article)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		// lost a race to another run; already ingested
		return false, nil
	}

	for _, name := range dedupeNames(r.AuthorNames) {
		author, err := in.findOrCreateAuthor(name)
		if err != nil {
			logger.Error("failed to resolve author", "provider", provider, "author", name, "error", err)
			continue
		}
		if err := in.db.Model(&article).Association("Authors").Append(author); err != nil {
			logger.Error("failed to attach author", "provider", provider, "author", name, "error", err)
		}
	}

	return true, nil
}

func (in *Ingester) findOrCreateSource(provider string, r RawArticle) (*models.Source, error) {
	source := models.Source{Name: r.SourceName, APIProvider: provider}
	err := in.db.
		Where(models.Source{Name: r.SourceName, APIProvider: provider}).
		Attrs(models.Source{APIID: optional(r.SourceAPIID), URL: optional(r.SourceURL)}).
		FirstOrCreate(&source).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (in *Ingester) findOrCreateCategory(name string) (*models.Category, error) {
	if name == "" {
		name = "General"
	}
	slug := Slugify(name)

	var category models.Category
	err := in.db.Where("slug = ?", slug).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	create := models.Category{Name: name, Slug: slug}
	res := in.db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).
		Create(&create)
	if res.Error != nil {
		return nil, res.Error
	}
	// re-read so a conflicting concurrent insert still resolves to one row
	if err := in.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (in *Ingester) findOrCreateAuthor(name string) (*models.Author, error) {
	author := models.Author{Name: name}
	if err := in.db.Where(models.Author{Name: name}).FirstOrCreate(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// Slugify lowercases the name and collapses runs of non-alphanumeric
// characters into single hyphens.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

var publishedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parsePublishedAt never rejects an article for a bad timestamp; absent or
// unparseable values fall back to the current time.
func parsePublishedAt(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC()
	}
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
