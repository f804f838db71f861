package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/naseemhussainn/news-aggregator-api/models"
)

// ErrUnknownPreferenceID reports a preference update referencing an id
// with no matching row.
var ErrUnknownPreferenceID = errors.New("unknown preference id")

type PreferredIDs struct {
	SourceIDs   []uint
	CategoryIDs []uint
	AuthorIDs   []uint
}

func (p PreferredIDs) Empty() bool {
	return len(p.SourceIDs) == 0 && len(p.CategoryIDs) == 0 && len(p.AuthorIDs) == 0
}

func LoadPreferredIDs(db *gorm.DB, userID uint) (PreferredIDs, error) {
	var ids PreferredIDs
	if err := db.Table("user_source_preferences").
		Where("user_id = ?", userID).
		Pluck("source_id", &ids.SourceIDs).Error; err != nil {
		return ids, err
	}
	if err := db.Table("user_category_preferences").
		Where("user_id = ?", userID).
		Pluck("category_id", &ids.CategoryIDs).Error; err != nil {
		return ids, err
	}
	if err := db.Table("user_author_preferences").
		Where("user_id = ?", userID).
		Pluck("author_id", &ids.AuthorIDs).Error; err != nil {
		return ids, err
	}
	return ids, nil
}

// ListFeed builds the personalized listing. Each populated preference set
// is an inclusion filter and the sets combine with AND, so a user with
// both sources and categories set sees only the intersection. A user with
// no preferences gets the unrestricted listing.
func ListFeed(db *gorm.DB, userID uint, f ArticleFilters) ([]models.Article, Pagination, error) {
	prefs, err := LoadPreferredIDs(db, userID)
	if err != nil {
		return nil, Pagination{}, err
	}

	q := db.Model(&models.Article{})
	if len(prefs.SourceIDs) > 0 {
		q = q.Where("articles.source_id IN ?", prefs.SourceIDs)
	}
	if len(prefs.CategoryIDs) > 0 {
		q = q.Where("articles.category_id IN ?", prefs.CategoryIDs)
	}
	if len(prefs.AuthorIDs) > 0 {
		q = q.Where("articles.id IN (SELECT article_id FROM article_authors WHERE author_id IN ?)", prefs.AuthorIDs)
	}
	q = applyContentFilters(q, f)
	return paginate(q, f)
}

// SetPreferredSources replaces the user's source preferences wholesale
// and returns the resolved rows. Unknown ids reject the whole update.
func SetPreferredSources(db *gorm.DB, user *models.User, ids []uint) ([]models.Source, error) {
	var sources []models.Source
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Find(&sources).Error; err != nil {
			return nil, err
		}
	}
	if len(sources) != len(uniqueIDs(ids)) {
		return nil, ErrUnknownPreferenceID
	}
	if len(sources) == 0 {
		if err := db.Model(user).Association("PreferredSources").Clear(); err != nil {
			return nil, err
		}
		return sources, nil
	}
	if err := db.Model(user).Association("PreferredSources").Replace(&sources); err != nil {
		return nil, err
	}
	return sources, nil
}

func SetPreferredCategories(db *gorm.DB, user *models.User, ids []uint) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
			return nil, err
		}
	}
	if len(categories) != len(uniqueIDs(ids)) {
		return nil, ErrUnknownPreferenceID
	}
	if len(categories) == 0 {
		if err := db.Model(user).Association("PreferredCategories").Clear(); err != nil {
			return nil, err
		}
		return categories, nil
	}
	if err := db.Model(user).Association("PreferredCategories").Replace(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func SetPreferredAuthors(db *gorm.DB, user *models.User, ids []uint) ([]models.Author, error) {
	var authors []models.Author
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Find(&authors).Error; err != nil {
			return nil, err
		}
	}
	if len(authors) != len(uniqueIDs(ids)) {
		return nil, ErrUnknownPreferenceID
	}
	if len(authors) == 0 {
		if err := db.Model(user).Association("PreferredAuthors").Clear(); err != nil {
			return nil, err
		}
		return authors, nil
	}
	if err := db.Model(user).Association("PreferredAuthors").Replace(&authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// GetPreferences loads the user's full preference sets for the read
// endpoint.
func GetPreferences(db *gorm.DB, userID uint) ([]models.Source, []models.Category, []models.Author, error) {
	var user models.User
	err := db.
		Preload("PreferredSources").
		Preload("PreferredCategories").
		Preload("PreferredAuthors").
		First(&user, userID).Error
	if err != nil {
		return nil, nil, nil, err
	}
	return user.PreferredSources, user.PreferredCategories, user.PreferredAuthors, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
