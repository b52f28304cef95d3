package admin

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/studybridge/consultancy-api/model"
	"github.com/studybridge/consultancy-api/services/docstore"
	"github.com/studybridge/consultancy-api/services/images"
	"github.com/studybridge/consultancy-api/utils/response"
)

// AdminHandler handles maintenance operations: manifest rebuilds and the
// orphan image sweep.
type AdminHandler struct {
	colleges   *docstore.Cached[model.College]
	seo        *docstore.Cached[model.SEOData]
	studyPages *docstore.Cached[model.StudyInCountryData]
	images     *images.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	colleges *docstore.Cached[model.College],
	seo *docstore.Cached[model.SEOData],
	studyPages *docstore.Cached[model.StudyInCountryData],
	imageService *images.Service,
) *AdminHandler {
	return &AdminHandler{
		colleges:   colleges,
		seo:        seo,
		studyPages: studyPages,
		images:     imageService,
	}
}

// Reindex handles POST /api/v1/admin/reindex?family=. It rebuilds the named
// family's manifest from a prefix scan, making documents whose manifest
// update was lost visible to listings again.
func (h *AdminHandler) Reindex(c *fiber.Ctx) error {
	family := c.Query("family")

	var slugs []string
	var err error
	switch family {
	case "colleges":
		slugs, err = h.colleges.RebuildManifest(c.Context())
	case "seo":
		slugs, err = h.seo.RebuildManifest(c.Context())
	case "study-in-country":
		slugs, err = h.studyPages.RebuildManifest(c.Context())
	default:
		return response.BadRequest(c, "family must be one of: colleges, seo, study-in-country")
	}
	if err != nil {
		log.Errorf("manifest rebuild failed for %s: %v", family, err)
		return response.InternalServerError(c, "Failed to rebuild manifest")
	}

	return response.SuccessWithMessage(c, "Manifest rebuilt", fiber.Map{
		"family": family,
		"count":  len(slugs),
		"slugs":  slugs,
	})
}

// CleanupImages handles POST /api/v1/admin/cleanup-images. It deletes every
// stored image not referenced by any document and reports the count.
func (h *AdminHandler) CleanupImages(c *fiber.Ctx) error {
	referenced, err := h.ReferencedImageURLs(c.Context())
	if err != nil {
		log.Errorf("failed to collect referenced image URLs: %v", err)
		return response.InternalServerError(c, "Failed to collect referenced images")
	}

	deleted, err := h.images.Cleanup(c.Context(), referenced)
	if err != nil {
		log.Errorf("orphan image sweep failed: %v", err)
		return response.InternalServerError(c, "Image cleanup failed")
	}

	return response.SuccessWithMessage(c, "Orphan images removed", fiber.Map{
		"deleted":    deleted,
		"referenced": len(referenced),
	})
}

// ReferencedImageURLs builds the union of image URLs embedded in every
// document family. The sweep deletes anything outside this set, so it must
// cover every field that can hold an image URL.
func (h *AdminHandler) ReferencedImageURLs(ctx context.Context) (map[string]struct{}, error) {
	referenced := make(map[string]struct{})

	colleges, err := h.colleges.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range colleges {
		for _, url := range colleges[i].ImageURLs() {
			referenced[url] = struct{}{}
		}
	}

	pages, err := h.studyPages.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		for _, url := range pages[i].ImageURLs() {
			referenced[url] = struct{}{}
		}
	}

	seoRecords, err := h.seo.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range seoRecords {
		if record.OGImage != "" {
			referenced[record.OGImage] = struct{}{}
		}
	}

	return referenced, nil
}
