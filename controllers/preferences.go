package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naseemhussainn/news-aggregator-api/common"
	"github.com/naseemhussainn/news-aggregator-api/middleware"
	"github.com/naseemhussainn/news-aggregator-api/models"
	"github.com/naseemhussainn/news-aggregator-api/services"
)

type PreferenceController struct {
	db *gorm.DB
}

func (p *PreferenceController) Index(c *gin.Context) {
	user := c.MustGet(middleware.ContextUserKey).(models.User)

	sources, categories, authors, err := services.GetPreferences(p.db, user.ID)
	if err != nil {
		common.HandleError(c, err, http.StatusInternalServerError)
		return
	}
	if sources == nil {
		sources = []models.Source{}
	}
	if categories == nil {
		categories = []models.Category{}
	}
	if authors == nil {
		authors = []models.Author{}
	}

	c.JSON(http.StatusOK, gin.H{
		"sources":    sources,
		"categories": categories,
		"authors":    authors,
	})
}

func (p *PreferenceController) SetSources(c *gin.Context) {
	var req struct {
		SourceIDs []uint `json:"source_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.SourceIDs) == 0 {
		common.FieldErrors(c, "source_ids", "The source_ids field is required.")
		return
	}

	user := c.MustGet(middleware.ContextUserKey).(models.User)
	sources, err := services.SetPreferredSources(p.db, &user, req.SourceIDs)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPreferenceID) {
			common.FieldErrors(c, "source_ids", "The selected source_ids is invalid.")
			return
		}
		common.HandleError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Source preferences updated successfully",
		"sources": sources,
	})
}

func (p *PreferenceController) SetCategories(c *gin.Context) {
	var req struct {
		CategoryIDs []uint `json:"category_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.CategoryIDs) == 0 {
		common.FieldErrors(c, "category_ids", "The category_ids field is required.")
		return
	}

	user := c.MustGet(middleware.ContextUserKey).(models.User)
	categories, err := services.SetPreferredCategories(p.db, &user, req.CategoryIDs)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPreferenceID) {
			common.FieldErrors(c, "category_ids", "The selected category_ids is invalid.")
			return
		}
		common.HandleError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Category preferences updated successfully",
		"categories": categories,
	})
}

func (p *PreferenceController) SetAuthors(c *gin.Context) {
	var req struct {
		AuthorIDs []uint `json:"author_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.AuthorIDs) == 0 {
		common.FieldErrors(c, "author_ids", "The author_ids field is required.")
		return
	}

	user := c.MustGet(middleware.ContextUserKey).(models.User)
	authors, err := services.SetPreferredAuthors(p.db, &user, req.AuthorIDs)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPreferenceID) {
			common.FieldErrors(c, "author_ids", "The selected author_ids is invalid.")
			return
		}
		common.HandleError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Author preferences updated successfully",
		"authors": authors,
	})
}
