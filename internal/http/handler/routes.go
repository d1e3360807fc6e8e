package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"mediaapi/internal/http/middleware"
	"mediaapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.MediaService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Media API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Readiness checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	media := app.Group("/media")

	// CORS policy per method group; the video read path additionally exposes
	// the headers browser media players need for range negotiation.
	uploadCORS := middleware.CORS(middleware.CORSConfig{AllowMethods: "POST, OPTIONS"})
	readCORS := middleware.CORS(middleware.CORSConfig{AllowMethods: "GET, HEAD, OPTIONS"})
	videoCORS := middleware.CORS(middleware.CORSConfig{
		AllowMethods:  "GET, HEAD, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Range, Accept-Ranges",
	})
	deleteCORS := middleware.CORS(middleware.CORSConfig{AllowMethods: "DELETE, OPTIONS"})

	media.Post("/upload", uploadCORS, UploadMedia(svc))
	media.Options("/upload", uploadCORS)

	media.Get("/image", readCORS, GetImage(svc))
	media.Options("/image", readCORS)

	media.Get("/pdf", readCORS, GetPDF(svc))
	media.Options("/pdf", readCORS)

	// Explicit HEAD is registered before GET so it wins route matching.
	media.Head("/video", videoCORS, HeadVideo(svc))
	media.Get("/video", videoCORS, GetVideo(svc))
	media.Options("/video", videoCORS)

	media.Delete("/delete", deleteCORS, DeleteMedia(svc))
	media.Options("/delete", deleteCORS)

	media.Get("/list", readCORS, ListMedia(svc))
	media.Options("/list", readCORS)

	media.Get("/info", readCORS, MediaInfo(svc))
	media.Options("/info", readCORS)
}
