package image

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/studybridge/consultancy-api/services/images"
	"github.com/studybridge/consultancy-api/utils/response"
)

// ImageHandler handles image uploads and deletion
type ImageHandler struct {
	images *images.Service
}

// NewImageHandler creates a new image handler
func NewImageHandler(svc *images.Service) *ImageHandler {
	return &ImageHandler{images: svc}
}

// Upload handles POST /api/v1/upload-image (admin). Multipart form fields:
// file (required), collegeSlug and role (optional).
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	if file.Size > images.MaxUploadSize {
		return response.BadRequest(c, "Image exceeds maximum allowed size of 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	contentType, err := images.ValidateUpload(data, file.Size)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	url, err := h.images.Upload(c.Context(), data, file.Filename,
		c.FormValue("collegeSlug"), c.FormValue("role"), contentType)
	if err != nil {
		log.Errorf("image upload failed: %v", err)
		return response.InternalServerError(c, "Failed to upload image")
	}

	return response.Created(c, fiber.Map{"url": url})
}

// Delete handles DELETE /api/v1/upload-image?imageUrl= (admin).
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	imageURL := c.Query("imageUrl")
	if imageURL == "" {
		return response.BadRequest(c, "imageUrl query parameter is required")
	}

	if err := h.images.DeleteByURL(c.Context(), imageURL); err != nil {
		log.Errorf("image delete failed for %s: %v", imageURL, err)
		return response.BadRequest(c, "Failed to delete image: "+err.Error())
	}

	return response.SuccessWithMessage(c, "Image deleted", fiber.Map{"url": imageURL})
}
