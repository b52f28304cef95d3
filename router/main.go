package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/studybridge/consultancy-api/config"
	"github.com/studybridge/consultancy-api/data"
	"github.com/studybridge/consultancy-api/handlers"
	admin_handlers "github.com/studybridge/consultancy-api/handlers/admin"
	college_handlers "github.com/studybridge/consultancy-api/handlers/college"
	image_handlers "github.com/studybridge/consultancy-api/handlers/image"
	seo_handlers "github.com/studybridge/consultancy-api/handlers/seo"
	studyin_handlers "github.com/studybridge/consultancy-api/handlers/studyin"
	"github.com/studybridge/consultancy-api/model"
	"github.com/studybridge/consultancy-api/services/docstore"
	"github.com/studybridge/consultancy-api/services/images"
	"github.com/studybridge/consultancy-api/services/spaces"
	"github.com/studybridge/consultancy-api/utils/cache"
	"github.com/studybridge/consultancy-api/utils/middleware"
	"github.com/studybridge/consultancy-api/utils/validation"
)

// readCacheTTL is how long decoded documents live in the Redis read cache.
const readCacheTTL = 5 * time.Minute

// SetupRoutes wires stores, handlers, and routes. The returned admin handler
// and image service also back the scheduled orphan sweep.
func SetupRoutes(app *fiber.App, env *config.EnvironmentVariable, blobs *spaces.Client, redisCache *cache.RedisCache) (*admin_handlers.AdminHandler, *images.Service) {
	v := validation.NewValidator()

	// Document read cache is optional: a nil Redis client degrades to
	// direct bucket reads.
	var docCache docstore.Cache
	if redisCache != nil {
		docCache = redisCache
	}

	collegeStore := docstore.NewCached(
		docstore.New(blobs, docstore.Family[model.College]{
			Prefix:   "colleges",
			SlugOf:   func(doc model.College) string { return doc.Slug },
			Validate: func(doc model.College) error { return v.ValidateStruct(doc) },
		}), docCache, readCacheTTL)

	seoStore := docstore.NewCached(
		docstore.New(blobs, docstore.Family[model.SEOData]{
			Prefix:   "seo",
			SlugOf:   func(doc model.SEOData) string { return doc.Slug },
			Validate: func(doc model.SEOData) error { return v.ValidateStruct(doc) },
		}), docCache, readCacheTTL)

	studyStore := docstore.NewCached(
		docstore.New(blobs, docstore.Family[model.StudyInCountryData]{
			Prefix:   "study-in-country",
			SlugOf:   func(doc model.StudyInCountryData) string { return doc.Slug },
			Validate: func(doc model.StudyInCountryData) error { return v.ValidateStruct(doc) },
		}), docCache, readCacheTTL)

	imageService := images.NewService(blobs)

	// Handlers, each composed with its static fallback tier
	collegeHandler := college_handlers.NewCollegeHandler(collegeStore, docstore.NewStaticSource(data.FallbackColleges()))
	seoHandler := seo_handlers.NewSEOHandler(seoStore, docstore.NewStaticSource(data.FallbackSEO()))
	studyInHandler := studyin_handlers.NewStudyInHandler(studyStore, docstore.NewStaticSource(data.FallbackStudyPages()))
	imageHandler := image_handlers.NewImageHandler(imageService)
	adminHandler := admin_handlers.NewAdminHandler(collegeStore, seoStore, studyStore, imageService)

	// Single shared-secret guard for every mutating/administrative route
	guard := middleware.NewAccessGuard(env.ADMIN_API_TOKEN)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth)

	// API v1 group
	api := app.Group("/api/v1")

	// Colleges
	colleges := api.Group("/colleges")
	colleges.Get("/", collegeHandler.Get)                         // Public: list, or single via ?slug=
	colleges.Post("/", guard.Required(), collegeHandler.Upsert)   // Admin: create/replace
	colleges.Delete("/", guard.Required(), collegeHandler.Delete) // Admin: delete via ?slug=

	// SEO records
	seo := api.Group("/seo")
	seo.Get("/", seoHandler.Get)                         // Public: list slugs, or single via ?slug=
	seo.Post("/", guard.Required(), seoHandler.Upsert)   // Admin: upsert
	seo.Delete("/", guard.Required(), seoHandler.Delete) // Admin: delete via ?slug=

	// Study-in-country landing pages
	studyIn := api.Group("/study-in")
	studyIn.Get("/", studyInHandler.Get)                         // Public: active pages only
	studyIn.Post("/", guard.Required(), studyInHandler.Upsert)   // Admin: create/replace
	studyIn.Delete("/", guard.Required(), studyInHandler.Delete) // Admin: delete via ?slug=

	// Image uploads
	api.Post("/upload-image", guard.Required(), imageHandler.Upload)
	api.Delete("/upload-image", guard.Required(), imageHandler.Delete)

	// Admin maintenance
	admin := api.Group("/admin", guard.Required())
	admin.Get("/study-in", studyInHandler.AdminList) // Admin: listing includes inactive drafts
	admin.Post("/reindex", adminHandler.Reindex)
	admin.Post("/cleanup-images", adminHandler.CleanupImages)

	return adminHandler, imageService
}
