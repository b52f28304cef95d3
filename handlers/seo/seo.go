package seo

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/studybridge/consultancy-api/model"
	"github.com/studybridge/consultancy-api/services/docstore"
	"github.com/studybridge/consultancy-api/utils/response"
)

const (
	primaryCacheTTL  = 30 * time.Minute
	fallbackCacheTTL = time.Minute
)

// SEOHandler handles per-page SEO metadata requests
type SEOHandler struct {
	store    *docstore.Cached[model.SEOData]
	fallback *docstore.Fallback[model.SEOData]
}

// NewSEOHandler creates a new SEO handler
func NewSEOHandler(store *docstore.Cached[model.SEOData], static *docstore.StaticSource[model.SEOData]) *SEOHandler {
	return &SEOHandler{
		store:    store,
		fallback: docstore.NewFallback[model.SEOData](store, static),
	}
}

// Get handles GET /api/v1/seo. With ?slug= it serves a single record;
// without it, the list of known page slugs.
func (h *SEOHandler) Get(c *fiber.Ctx) error {
	slug := c.Query("slug")
	if slug == "" {
		slugs, err := h.store.List(c.Context())
		if err != nil {
			log.Errorf("seo list failed: %v", err)
			return response.InternalServerError(c, "Failed to list SEO records")
		}
		response.CachePublic(c, primaryCacheTTL)
		return response.Success(c, slugs)
	}

	doc, origin, err := h.fallback.Get(c.Context(), slug)
	if err != nil {
		if docstore.IsNotFound(err) {
			return response.NotFound(c, "SEO record not found")
		}
		log.Errorf("seo read failed for %q: %v", slug, err)
		return response.InternalServerError(c, "Failed to fetch SEO record")
	}

	if origin == docstore.OriginFallback {
		response.CacheShort(c, fallbackCacheTTL)
	} else {
		response.CachePublic(c, primaryCacheTTL)
	}
	return response.Success(c, doc)
}

// Upsert handles POST /api/v1/seo (admin). Creation and update share this
// write path.
func (h *SEOHandler) Upsert(c *fiber.Ctx) error {
	var doc model.SEOData
	if err := c.BodyParser(&doc); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	doc.LastUpdated = time.Now().UTC()
	if doc.UpdatedBy == "" {
		doc.UpdatedBy = "admin"
	}

	if err := h.store.Put(c.Context(), doc); err != nil {
		var ve *docstore.ValidationError
		if errors.As(err, &ve) {
			return response.ValidationFailed(c, ve.Err)
		}
		log.Errorf("seo write failed for %q: %v", doc.Slug, err)
		return response.InternalServerError(c, "Failed to save SEO record")
	}

	return response.SuccessWithMessage(c, "SEO record saved", doc)
}

// Delete handles DELETE /api/v1/seo?slug= (admin).
func (h *SEOHandler) Delete(c *fiber.Ctx) error {
	slug := c.Query("slug")
	if slug == "" {
		return response.BadRequest(c, "slug query parameter is required")
	}

	if err := h.store.Delete(c.Context(), slug); err != nil {
		log.Errorf("seo delete failed for %q: %v", slug, err)
		return response.InternalServerError(c, "Failed to delete SEO record")
	}

	return response.SuccessWithMessage(c, "SEO record deleted", fiber.Map{"slug": slug})
}
