package main

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/joho/godotenv"

	"techfluence/internal/backend"
	"techfluence/internal/config"
	"techfluence/internal/handlers"
	"techfluence/internal/identity"
	"techfluence/internal/services"
	"techfluence/internal/store"
	"techfluence/internal/wizard"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed all:assets
var assetsFS embed.FS

func main() {
	// 1. Load configuration (.env is optional in production).
	_ = godotenv.Load()
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg := logger.Init("techfluence", true, false, io.Discard)
	defer lg.Close()

	// 2. Wire the hosted backend and the services.
	st := store.New(backend.New(cfg.BackendURL, cfg.BackendAPIKey))
	wizardService := services.NewWizardService()
	pipeline := wizard.NewPipeline(st)
	adminService := services.NewAdminService(st)
	contactService := services.NewContactService(cfg.ContactRelayURL, cfg.ContactAccessKey)
	verifier := identity.NewVerifier(cfg.SessionSecret)

	// 3. Load HTML templates from the embedded filesystem.
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// 4. Initialize the HTTP Handler.
	httpHandler := handlers.NewHTTPHandler(
		wizardService, pipeline, adminService, contactService, st, templates, cfg.AuthBaseURL)

	// 5. Set up the Gin router.
	r := gin.Default()

	// 6. Serve static files from the embedded filesystem.
	assetsSubFS, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		log.Fatalf("Failed to create assets sub-filesystem: %v", err)
	}
	r.StaticFS("/assets", http.FS(assetsSubFS))

	// 7. Register public routes (before middleware).
	httpHandler.RegisterPublicRoutes(r)

	// 8. Group routes that use the browsing session and the signed-in user.
	sessionRoutes := r.Group("/")
	sessionRoutes.Use(httpHandler.SessionMiddleware(), verifier.Resolve())
	httpHandler.RegisterSessionRoutes(sessionRoutes, cfg.AdminEmails)

	// 9. Start the background janitor to clean up inactive wizard sessions.
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			wizardService.CleanUpInactiveSessions()
			logger.Infof("Performed cleanup of inactive wizard sessions.")
		}
	}()

	// 10. Run the server.
	log.Printf("Server starting on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
