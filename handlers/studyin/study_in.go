package studyin

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

// StudyInHandler handles study-in-country landing page requests
type StudyInHandler struct {
	store    *docstore.Cached[model.StudyInCountryData]
	static   *docstore.StaticSource[model.StudyInCountryData]
	fallback *docstore.Fallback[model.StudyInCountryData]
}

// NewStudyInHandler creates a new study-in-country handler
func NewStudyInHandler(store *docstore.Cached[model.StudyInCountryData], static *docstore.StaticSource[model.StudyInCountryData]) *StudyInHandler {
	return &StudyInHandler{
		store:    store,
		static:   static,
		fallback: docstore.NewFallback[model.StudyInCountryData](store, static),
	}
}

// Get handles GET /api/v1/study-in. Inactive records are invisible here even
// though they still exist in storage: IsActive is a draft flag, not a
// deletion.
func (h *StudyInHandler) Get(c *fiber.Ctx) error {
	slug := c.Query("slug")
	if slug == "" {
		return h.listActive(c)
	}

	doc, origin, err := h.fallback.Get(c.Context(), slug)
	if err != nil {
		if docstore.IsNotFound(err) {
			return response.NotFound(c, "Page not found")
		}
		log.Errorf("study page read failed for %q: %v", slug, err)
		return response.InternalServerError(c, "Failed to fetch page")
	}
	if !doc.IsActive {
		return response.NotFound(c, "Page not found")
	}

	if origin == docstore.OriginFallback {
		response.CacheShort(c, fallbackCacheTTL)
	} else {
		response.CachePublic(c, primaryCacheTTL)
	}
	return response.Success(c, doc)
}

func (h *StudyInHandler) listActive(c *fiber.Ctx) error {
	docs, err := h.store.ListDocuments(c.Context())
	if err != nil {
		log.Errorf("study page list failed, serving fallback records: %v", err)
		docs = h.static.Documents()
		response.CacheShort(c, fallbackCacheTTL)
	} else {
		response.CachePublic(c, primaryCacheTTL)
	}

	active := make([]model.StudyInCountryData, 0, len(docs))
	for _, doc := range docs {
		if doc.IsActive {
			active = append(active, doc)
		}
	}
	return response.Success(c, active)
}

// AdminList handles GET /api/v1/admin/study-in: the full listing including
// inactive drafts.
func (h *StudyInHandler) AdminList(c *fiber.Ctx) error {
	docs, err := h.store.ListDocuments(c.Context())
	if err != nil {
		log.Errorf("admin study page list failed: %v", err)
		return response.InternalServerError(c, "Failed to list pages")
	}
	return response.Success(c, docs)
}

// Upsert handles POST /api/v1/study-in (admin).
func (h *StudyInHandler) Upsert(c *fiber.Ctx) error {
	var doc model.StudyInCountryData
	if err := c.BodyParser(&doc); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	doc.LastUpdated = time.Now().UTC()

	if err := h.store.Put(c.Context(), doc); err != nil {
		var ve *docstore.ValidationError
		if errors.As(err, &ve) {
			return response.ValidationFailed(c, ve.Err)
		}
		log.Errorf("study page write failed for %q: %v", doc.Slug, err)
		return response.InternalServerError(c, "Failed to save page")
	}

	return response.SuccessWithMessage(c, "Page saved", doc)
}

// Delete handles DELETE /api/v1/study-in?slug= (admin).
func (h *StudyInHandler) Delete(c *fiber.Ctx) error {
	slug := c.Query("slug")
	if slug == "" {
		return response.BadRequest(c, "slug query parameter is required")
	}

	if err := h.store.Delete(c.Context(), slug); err != nil {
		log.Errorf("study page delete failed for %q: %v", slug, err)
		return response.InternalServerError(c, "Failed to delete page")
	}

	return response.SuccessWithMessage(c, "Page deleted", fiber.Map{"slug": slug})
}
