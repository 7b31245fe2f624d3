package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/middleware"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/services"
	"github.com/nami21/support-portal/internal/store"
	"github.com/nami21/support-portal/internal/version"
)

// Services bundles everything the router needs.
type Services struct {
	Users         *services.UserService
	FAQs          *services.FAQService
	Announcements *services.AnnouncementService
	SystemUpdates *services.SystemUpdateService
	Documents     *services.DocumentService
	Training      *services.TrainingService
	Tickets       *services.TicketService
	Chat          *services.ChatService
}

// NewServices constructs the full service set over one storage backend.
func NewServices(st store.Store, logger *observability.Logger, cfg *config.Config) *Services {
	return &Services{
		Users:         services.NewUserService(st, logger, cfg),
		FAQs:          services.NewFAQService(st, logger),
		Announcements: services.NewAnnouncementService(st, logger),
		SystemUpdates: services.NewSystemUpdateService(st, logger),
		Documents:     services.NewDocumentService(st, logger),
		Training:      services.NewTrainingService(st, logger),
		Tickets:       services.NewTicketService(st, logger),
		Chat:          services.NewChatService(st, logger, cfg.Chat),
	}
}

// registerValidators installs the custom binding validators used by the
// request models.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("portalrole", func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		})
	}
}

// NewRouter creates a new router with all the necessary middleware and routes.
func NewRouter(cfg *config.Config, svcs *Services, backend string, logger *observability.Logger) *gin.Engine {
	registerValidators()

	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// HTTP request logging through the observability logger
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.status_code": c.Writer.Status(),
			"http.latency_ms":  time.Since(start).Milliseconds(),
			"http.client_ip":   c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["http.error"] = c.Errors.String()
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error(c.Request.Context(), "HTTP request failed", nil, fields)
		case status >= 400:
			logger.Warn(c.Request.Context(), "HTTP request warning", fields)
		default:
			logger.Info(c.Request.Context(), "HTTP request", fields)
		}
	})

	// Health check endpoint (defined before any middleware)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "support-portal", "backend": backend})
	})

	router.Use(observability.GinMiddlewareWithErrorHandling("support-portal"))

	router.RedirectTrailingSlash = false

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	sessionStore := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	sessionOpts := sessions.Options{
		Path:     config.SessionPath,
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: config.SessionHTTPOnly,
		Secure:   config.SessionSecure,
	}
	if cfg.Server.Debug {
		sessionOpts.SameSite = http.SameSiteDefaultMode
		sessionOpts.Secure = false
	} else {
		sessionOpts.SameSite = http.SameSiteLaxMode
		sessionOpts.Secure = true
	}
	sessionStore.Options(sessionOpts)
	router.Use(sessions.Sessions(config.SessionName, sessionStore))

	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.ContentSecurityPolicy = config.DefaultCSP
	router.Use(secure.New(secureConfig))

	authHandler := NewAuthHandler(svcs.Users, logger)
	ticketHandler := NewTicketHandler(svcs.Tickets, logger)
	chatHandler := NewChatHandler(svcs.Chat, logger)
	userAdminHandler := NewUserAdminHandler(svcs.Users, logger)

	v1 := router.Group("/v1")
	{
		v1.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"service":   "support-portal",
				"version":   version.Version,
				"commit":    version.Commit,
				"buildTime": version.BuildTime,
				"backend":   backend,
			})
		})

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/status", authHandler.Status)
		}

		authed := v1.Group("")
		authed.Use(middleware.RequireAuth())
		{
			registerCRUD(authed, "/faqs", svcs.FAQs, logger)
			registerCRUD(authed, "/announcements", svcs.Announcements, logger)
			registerCRUD(authed, "/system-updates", svcs.SystemUpdates, logger)
			registerCRUD(authed, "/documents", svcs.Documents, logger)
			registerCRUD(authed, "/training-materials", svcs.Training, logger)

			registerCRUD(authed, "/tickets", svcs.Tickets, logger)
			authed.GET("/tickets/:id", ticketHandler.GetTicket)

			chat := authed.Group("/chat")
			{
				chat.GET("/messages", chatHandler.History)
				chat.POST("/messages", chatHandler.Send)
				chat.DELETE("/messages", chatHandler.Clear)
			}
		}

		admin := v1.Group("/users")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("", userAdminHandler.ListUsers)
			admin.POST("", userAdminHandler.CreateUser)
			admin.GET("/:id", userAdminHandler.GetUser)
			admin.PUT("/:id", userAdminHandler.UpdateUser)
			admin.DELETE("/:id", userAdminHandler.DeleteUser)
		}
	}

	return router
}
