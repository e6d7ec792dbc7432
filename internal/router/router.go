package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/yukikurage/document-management-api/internal/auth"
	"github.com/yukikurage/document-management-api/internal/config"
	"github.com/yukikurage/document-management-api/internal/constants"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"github.com/yukikurage/document-management-api/internal/handlers"
	"github.com/yukikurage/document-management-api/internal/metrics"
	"github.com/yukikurage/document-management-api/internal/middleware"
	"github.com/yukikurage/document-management-api/internal/models"
	"github.com/yukikurage/document-management-api/internal/repository"
	"github.com/yukikurage/document-management-api/internal/services"
	"github.com/yukikurage/document-management-api/internal/storage"
	"github.com/yukikurage/document-management-api/internal/tracing"
	"github.com/yukikurage/document-management-api/internal/worker"
	"gorm.io/gorm"
)

// App holds the HTTP engine and the long running pieces built alongside it.
type App struct {
	Engine      *gin.Engine
	PurgeWorker *worker.PurgeWorker
	Users       *services.UserService
	Tokens      *auth.TokenManager

	cfg *config.Config
}

// New wires repositories, services and handlers onto a gin engine.
func New(cfg *config.Config, db *gorm.DB, logger *slog.Logger) (*App, error) {
	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	docTypeRepo := repository.NewTaxonomyRepository(db, models.TaxonomyDocumentType)
	jobTypeRepo := repository.NewTaxonomyRepository(db, models.TaxonomyItJobType)
	activityRepo := repository.NewActivityRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db, docRepo.HasTitle())

	logger.Info("document schema inspected", slog.Bool("title_column", docRepo.HasTitle()))

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	folderService := services.NewFolderService(folderRepo)
	documentService := services.NewDocumentService(docRepo, folderRepo, docTypeRepo, jobTypeRepo, activityRepo, files, logger)
	docTypeService := services.NewTaxonomyService(docTypeRepo)
	jobTypeService := services.NewTaxonomyService(jobTypeRepo)
	dashboardService := services.NewDashboardService(dashboardRepo, activityRepo)

	purgeWorker := worker.NewPurgeWorker(docRepo, activityRepo, files, logger, cfg.Retention(), cfg.TrashPurgeSchedule)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	folderHandler := handlers.NewFolderHandler(folderService, logger)
	documentHandler := handlers.NewDocumentHandler(documentService, cfg.MaxUploadBytes(), logger)
	docTypeHandler := handlers.NewTaxonomyHandler(docTypeService, logger)
	jobTypeHandler := handlers.NewTaxonomyHandler(jobTypeService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)
	trashHandler := handlers.NewTrashHandler(purgeWorker, logger)

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger), metrics.GinMiddleware())

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	requireAdmin := middleware.RequireRole(constants.RoleAdmin)

	// Health check endpoints
	r.GET("/health", handlers.Health)
	r.GET("/readyz", handlers.Ready(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/me", requireAuth, authHandler.Me)

		// Folder routes (identity optional)
		folders := api.Group("/folders")
		folders.Use(optionalAuth)
		{
			folders.GET("", folderHandler.ListFolders)
			folders.POST("", folderHandler.CreateFolder)
		}

		api.GET("/documents", optionalAuth, documentHandler.ListDocuments)
		docs := api.Group("/documents")
		docs.Use(requireAuth)
		{
			docs.POST("", documentHandler.UploadDocument)
			docs.GET("/:id", documentHandler.GetDocument)
			docs.GET("/:id/download", documentHandler.DownloadDocument)
			docs.DELETE("/:id", documentHandler.DeleteDocument)
			docs.POST("/:id/restore", documentHandler.RestoreDocument)
		}

		trash := api.Group("/trash")
		trash.Use(requireAuth)
		{
			trash.GET("", documentHandler.ListTrash)
			trash.POST("/purge", requireAdmin, trashHandler.Purge)
		}

		// Taxonomy settings (writes are admin only)
		settings := api.Group("/settings")
		settings.Use(requireAuth)
		{
			mountTaxonomy(settings.Group("/document-types"), docTypeHandler, requireAdmin)
			mountTaxonomy(settings.Group("/it-job-types"), jobTypeHandler, requireAdmin)
		}
		api.GET("/document-types", requireAuth, docTypeHandler.ListActiveEntries)
		api.GET("/it-job-types", requireAuth, jobTypeHandler.ListActiveEntries)

		users := api.Group("/users")
		users.Use(requireAuth, requireAdmin)
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.PATCH("/:id/active", userHandler.SetUserActive)
		}

		api.GET("/dashboard/summary", requireAuth, dashboardHandler.Summary)
	}

	r.NoRoute(noRoute(cfg.StaticDir))

	return &App{
		Engine:      r,
		PurgeWorker: purgeWorker,
		Users:       userService,
		Tokens:      tokens,
		cfg:         cfg,
	}, nil
}

func mountTaxonomy(g *gin.RouterGroup, h *handlers.TaxonomyHandler, requireAdmin gin.HandlerFunc) {
	g.GET("", h.ListEntries)
	g.POST("", requireAdmin, h.CreateEntry)
	g.PATCH("/:id", requireAdmin, h.UpdateEntry)
	g.DELETE("/:id", requireAdmin, h.DeleteEntry)
}

// noRoute answers unknown API paths with the JSON envelope and, when a static
// directory is configured, serves the SPA with an index.html fallback.
func noRoute(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if staticDir == "" || p == "/api" || strings.HasPrefix(p, "/api/") ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			apierrors.NotFound(c, "Route not found")
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}

// Handler wraps the engine with CORS and tracing for serving.
func (a *App) Handler() http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   a.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(a.Engine)

	return tracing.Wrap(corsHandler, a.cfg.OTelServiceName)
}

// BootstrapAdmin creates the configured admin account when it does not exist.
func (a *App) BootstrapAdmin(logger *slog.Logger) error {
	if a.cfg.AdminUsername == "" || a.cfg.AdminPassword == "" {
		return nil
	}
	user, err := a.Users.CreateAdmin(services.CreateUserInput{
		Username: a.cfg.AdminUsername,
		Password: a.cfg.AdminPassword,
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.Info("bootstrap admin created", slog.String("username", user.Username))
	return nil
}
