package college

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

// CollegeHandler handles college document requests
type CollegeHandler struct {
	store    *docstore.Cached[model.College]
	static   *docstore.StaticSource[model.College]
	fallback *docstore.Fallback[model.College]
}

// NewCollegeHandler creates a new college handler
func NewCollegeHandler(store *docstore.Cached[model.College], static *docstore.StaticSource[model.College]) *CollegeHandler {
	return &CollegeHandler{
		store:    store,
		static:   static,
		fallback: docstore.NewFallback[model.College](store, static),
	}
}

// Get handles GET /api/v1/colleges. With ?slug= it serves a single college;
// without it, the full listing.
func (h *CollegeHandler) Get(c *fiber.Ctx) error {
	slug := c.Query("slug")
	if slug == "" {
		return h.list(c)
	}

	doc, origin, err := h.fallback.Get(c.Context(), slug)
	if err != nil {
		if docstore.IsNotFound(err) {
			return response.NotFound(c, "College not found")
		}
		log.Errorf("college read failed for %q: %v", slug, err)
		return response.InternalServerError(c, "Failed to fetch college")
	}

	setReadCache(c, origin)
	return response.Success(c, doc)
}

func (h *CollegeHandler) list(c *fiber.Ctx) error {
	docs, err := h.store.ListDocuments(c.Context())
	if err != nil {
		log.Errorf("college list failed, serving fallback records: %v", err)
		response.CacheShort(c, fallbackCacheTTL)
		return response.Success(c, h.static.Documents())
	}

	response.CachePublic(c, primaryCacheTTL)
	return response.Success(c, docs)
}

// Upsert handles POST /api/v1/colleges (admin). Full-document replace: the
// stored record is whatever the body carries, no merge with the previous
// version.
func (h *CollegeHandler) Upsert(c *fiber.Ctx) error {
	var doc model.College
	if err := c.BodyParser(&doc); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	doc.LastUpdated = time.Now().UTC()

	if err := h.store.Put(c.Context(), doc); err != nil {
		var ve *docstore.ValidationError
		if errors.As(err, &ve) {
			return response.ValidationFailed(c, ve.Err)
		}
		log.Errorf("college write failed for %q: %v", doc.Slug, err)
		return response.InternalServerError(c, "Failed to save college")
	}

	return response.SuccessWithMessage(c, "College saved", doc)
}

// Delete handles DELETE /api/v1/colleges?slug= (admin). Idempotent: deleting
// an absent slug still succeeds. Stored images are not removed here; the
// orphan sweep handles those separately.
func (h *CollegeHandler) Delete(c *fiber.Ctx) error {
	slug := c.Query("slug")
	if slug == "" {
		return response.BadRequest(c, "slug query parameter is required")
	}

	if err := h.store.Delete(c.Context(), slug); err != nil {
		log.Errorf("college delete failed for %q: %v", slug, err)
		return response.InternalServerError(c, "Failed to delete college")
	}

	return response.SuccessWithMessage(c, "College deleted", fiber.Map{"slug": slug})
}

func setReadCache(c *fiber.Ctx, origin docstore.Origin) {
	if origin == docstore.OriginFallback {
		response.CacheShort(c, fallbackCacheTTL)
		return
	}
	response.CachePublic(c, primaryCacheTTL)
}
