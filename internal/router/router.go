package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Furiouss38/podv2/internal/handler"
	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Directory  *handler.DirectoryHandler
	Channel    *handler.ChannelHandler
	Theme      *handler.ThemeHandler
	Type       *handler.TaxonHandler
	Discipline *handler.TaxonHandler
	Video      *handler.VideoHandler
	View       *handler.ViewHandler
	Upload     *handler.UploadHandler
	Stats      *handler.StatsHandler
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app. The returned func stops the rate limiters' background sweep.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) func() {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(metrics.Middleware())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", metrics.Handler())

	limits := middleware.NewLimiters()
	read := limits.Read.Handler()
	write := limits.Write.Handler()
	views := limits.View.Handler()
	upload := limits.Upload.Handler()

	// Rate limiters run before the route handler.
	api := app.Group("/api")

	// Owners and groups
	api.Get("/owners", read, h.Directory.ListOwners)
	api.Post("/owners", write, h.Directory.CreateOwner)
	api.Get("/owners/:id", read, h.Directory.GetOwner)
	api.Get("/groups", read, h.Directory.ListGroups)
	api.Post("/groups", write, h.Directory.CreateGroup)

	// Channels
	api.Get("/channels", read, h.Channel.List)
	api.Post("/channels", write, h.Channel.Create)
	api.Put("/channels/id/:id", write, h.Channel.Update)
	api.Delete("/channels/id/:id", write, h.Channel.Delete)
	api.Get("/channels/:slug", read, h.Channel.GetBySlug)

	// Themes
	api.Get("/themes", read, h.Theme.List)
	api.Post("/themes", write, h.Theme.Create)
	api.Get("/themes/:id", read, h.Theme.Get)
	api.Put("/themes/:id", write, h.Theme.Update)
	api.Delete("/themes/:id", write, h.Theme.Delete)

	// Types and disciplines
	taxon(api, "/types", h.Type, read, write)
	taxon(api, "/disciplines", h.Discipline, read, write)

	// Videos
	api.Get("/videos", read, h.Video.List)
	api.Post("/videos", write, h.Video.Create)
	api.Get("/videos/id/:id", read, h.Video.Get)
	api.Put("/videos/id/:id", write, h.Video.Update)
	api.Delete("/videos/id/:id", write, h.Video.Delete)
	api.Put("/videos/id/:id/file", upload, h.Video.UploadFile)
	api.Post("/videos/id/:id/views", views, h.View.Record)
	api.Get("/videos/id/:id/views", read, h.View.List)
	api.Get("/videos/:slug", read, h.Video.GetBySlug)

	// Auxiliary files (headbands, icons, thumbnails)
	api.Post("/files", upload, h.Upload.UploadFile)

	api.Get("/stats", read, h.Stats.GetStats)

	return limits.Stop
}

func taxon(api fiber.Router, prefix string, h *handler.TaxonHandler, read, write fiber.Handler) {
	api.Get(prefix, read, h.List)
	api.Post(prefix, write, h.Create)
	api.Get(prefix+"/:id", read, h.Get)
	api.Put(prefix+"/:id", write, h.Update)
	api.Delete(prefix+"/:id", write, h.Delete)
}
