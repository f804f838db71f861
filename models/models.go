package models

import (
	"time"

	"gorm.io/gorm"
)

type Source struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	APIID       *string   `gorm:"size:255" json:"api_id"`
	URL         *string   `gorm:"size:512" json:"url"`
	APIProvider string    `gorm:"size:32;not null;index" json:"api_provider"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	APIID     *string   `gorm:"size:255" json:"api_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Article is the normalized record shared by all providers. URL carries the
// unique index that makes re-ingesting the same article a no-op.
type Article struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:1024;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Content     *string    `gorm:"type:text" json:"content"`
	URL         string     `gorm:"size:1024;not null;uniqueIndex" json:"url"`
	ImageURL    *string    `gorm:"size:1024" json:"image_url"`
	ExternalID  *string    `gorm:"size:255" json:"external_id"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	SourceID    uint       `gorm:"not null;index" json:"-"`
	Source      Source     `json:"source"`
	CategoryID  *uint      `gorm:"index" json:"-"`
	Category    *Category  `json:"category"`
	Authors     []Author   `gorm:"many2many:article_authors;" json:"authors"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// User preferences live in three typed join tables rather than one
// polymorphic (type, id) table, so a preference can only reference an
// entity of its own kind.
type User struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	Email               string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password            string     `gorm:"size:255;not null" json:"-"`
	PreferredSources    []Source   `gorm:"many2many:user_source_preferences;" json:"-"`
	PreferredCategories []Category `gorm:"many2many:user_category_preferences;" json:"-"`
	PreferredAuthors    []Author   `gorm:"many2many:user_author_preferences;" json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Token is one issued bearer credential. The JWT carries the row id as its
// jti claim; deleting the row revokes the credential.
type Token struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PasswordReset struct {
	Token     string    `gorm:"primaryKey;size:36" json:"-"`
	Email     string    `gorm:"size:255;not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Source{},
		&Category{},
		&Author{},
		&Article{},
		&User{},
		&Token{},
		&PasswordReset{},
	)
}
