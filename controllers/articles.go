package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naseemhussainn/news-aggregator-api/cache"
	"github.com/naseemhussainn/news-aggregator-api/config"
	"github.com/naseemhussainn/news-aggregator-api/middleware"
	"github.com/naseemhussainn/news-aggregator-api/models"
	"github.com/naseemhussainn/news-aggregator-api/services"
)

type ArticleController struct {
	db    *gorm.DB
	cfg   *config.Config
	cache *cache.Cache
}

func (a *ArticleController) Index(c *gin.Context) {
	filters := parseFilters(c)
	key := cache.ArticlesKey(keyParams(filters))
	if cached, ok := a.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	articles, meta, err := services.ListArticles(a.db, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load articles"})
		return
	}

	resp := listResponse(articles, meta)
	a.cache.Set(key, resp, a.cfg.ArticlesCacheTTL)
	c.JSON(http.StatusOK, resp)
}

func (a *ArticleController) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}

	key := cache.ArticleKey(uint(id))
	if cached, ok := a.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	var article models.Article
	err = a.db.
		Preload("Source").
		Preload("Category").
		Preload("Authors").
		First(&article, uint(id)).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}

	resp := gin.H{"data": article}
	a.cache.Set(key, resp, a.cfg.ArticleCacheTTL)
	c.JSON(http.StatusOK, resp)
}

// Feed serves the personalized listing. Only search and date filters are
// recognized here; source/category/author restrictions come from the
// caller's stored preferences.
func (a *ArticleController) Feed(c *gin.Context) {
	user := c.MustGet(middleware.ContextUserKey).(models.User)

	filters := parseFilters(c)
	filters.CategoryID = 0
	filters.SourceID = 0
	filters.AuthorID = 0

	key := cache.FeedKey(user.ID, keyParams(filters))
	if cached, ok := a.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	articles, meta, err := services.ListFeed(a.db, user.ID, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load feed"})
		return
	}

	resp := listResponse(articles, meta)
	a.cache.Set(key, resp, a.cfg.FeedCacheTTL)
	c.JSON(http.StatusOK, resp)
}

func listResponse(articles []models.Article, meta services.Pagination) gin.H {
	if articles == nil {
		articles = []models.Article{}
	}
	return gin.H{
		"data": articles,
		"meta": meta,
	}
}

func parseFilters(c *gin.Context) services.ArticleFilters {
	return services.ArticleFilters{
		Keyword:       c.Query("keyword"),
		Date:          c.Query("date"),
		CategoryID:    queryUint(c, "category_id"),
		SourceID:      queryUint(c, "source_id"),
		AuthorID:      queryUint(c, "author_id"),
		SortBy:        c.Query("sort_by"),
		SortDirection: c.Query("sort_direction"),
		Page:          queryInt(c, "page"),
		PerPage:       queryInt(c, "per_page"),
	}
}

func keyParams(f services.ArticleFilters) cache.KeyParams {
	return cache.KeyParams{
		Keyword:       f.Keyword,
		Date:          f.Date,
		CategoryID:    f.CategoryID,
		SourceID:      f.SourceID,
		AuthorID:      f.AuthorID,
		SortBy:        f.SortBy,
		SortDirection: f.SortDirection,
		Page:          f.Page,
		PerPage:       f.PerPage,
	}
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
