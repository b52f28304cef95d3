// Package images manages uploaded media assets: validated uploads keyed by
// owning college and role, deletion by public URL, and the orphan sweep.
package images

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Prefix is the key namespace for uploaded images. Keeping it separate from
// the document family prefixes lets the orphan sweep list images without
// touching document or manifest blobs.
const Prefix = "images"

// MaxUploadSize is the size ceiling for a single uploaded image.
const MaxUploadSize = 10 * 1024 * 1024 // 10 MiB

// Roles an image can be uploaded under.
const (
	RoleLogo    = "logo"
	RoleBanner  = "banner"
	RoleGallery = "gallery"
)

// DefaultOwner is used when no owning college slug is supplied.
const DefaultOwner = "general"

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var safeNamePattern = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Blobs is the subset of the Spaces client the image service needs.
type Blobs interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	PublicURL(key string) string
	KeyForURL(url string) (string, bool)
}

// Service handles image storage.
type Service struct {
	blobs Blobs
}

// NewService creates an image service over the given blob store.
func NewService(blobs Blobs) *Service {
	return &Service{blobs: blobs}
}

// ValidateUpload checks the sniffed content type and size before an upload
// is accepted. Returns the canonical content type.
func ValidateUpload(head []byte, size int64) (string, error) {
	if size > MaxUploadSize {
		return "", fmt.Errorf("image exceeds maximum size of 10MB")
	}
	contentType := http.DetectContentType(head)
	if _, ok := allowedContentTypes[contentType]; !ok {
		return "", fmt.Errorf("unsupported image type %s; allowed: JPEG, PNG, WebP, GIF", contentType)
	}
	return contentType, nil
}

// Upload stores an image and returns its public URL. The key embeds the
// owning college slug and role tag so related assets group together, with a
// random component so re-uploads of the same filename never overwrite.
func (s *Service) Upload(ctx context.Context, data []byte, filename, collegeSlug, role, contentType string) (string, error) {
	if collegeSlug == "" {
		collegeSlug = DefaultOwner
	}
	switch role {
	case RoleLogo, RoleBanner, RoleGallery:
	case "":
		role = RoleGallery
	default:
		return "", fmt.Errorf("unknown image role %q", role)
	}

	key := fmt.Sprintf("%s/%s/%s/%s_%s",
		Prefix, collegeSlug, role, uuid.NewString()[:8], sanitizeFilename(filename, contentType))

	if err := s.blobs.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return s.blobs.PublicURL(key), nil
}

// DeleteByURL removes a single stored image identified by its public URL.
func (s *Service) DeleteByURL(ctx context.Context, imageURL string) error {
	key, ok := s.blobs.KeyForURL(imageURL)
	if !ok || !strings.HasPrefix(key, Prefix+"/") {
		return fmt.Errorf("URL does not identify a stored image: %s", imageURL)
	}
	return s.blobs.Delete(ctx, key)
}

// Cleanup deletes every stored image whose public URL is not in referenced
// and returns the count removed. Correctness depends on the caller passing
// the union of image URLs from every document family; an incomplete set
// deletes images that are still in use.
func (s *Service) Cleanup(ctx context.Context, referenced map[string]struct{}) (int, error) {
	keys, err := s.blobs.List(ctx, Prefix+"/")
	if err != nil {
		return 0, fmt.Errorf("failed to list stored images: %w", err)
	}

	deleted := 0
	for _, key := range keys {
		if _, ok := referenced[s.blobs.PublicURL(key)]; ok {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			return deleted, fmt.Errorf("failed to delete orphan image %s: %w", key, err)
		}
		deleted++
	}
	return deleted, nil
}

func sanitizeFilename(filename, contentType string) string {
	base := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = safeNamePattern.ReplaceAllString(name, "-")
	if name == "" || name == "." {
		name = "image"
	}
	if ext == "" {
		ext = allowedContentTypes[contentType]
	}
	return name + ext
}
