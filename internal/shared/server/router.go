package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/analysis"
	googleauth "healthtrack-backend/internal/auth"
	"healthtrack-backend/internal/dashboard"
	"healthtrack-backend/internal/documents"
	"healthtrack-backend/internal/records"
	sharedauth "healthtrack-backend/internal/shared/auth"
	"healthtrack-backend/internal/shared/metrics"
	"healthtrack-backend/internal/shared/server/middleware"
	"healthtrack-backend/internal/shared/server/respond"
	"healthtrack-backend/internal/users"
)

// RouterDeps carries everything the router wires up.
type RouterDeps struct {
	Tokens          *sharedauth.Tokens
	CORSAllowOrigin []string
	// Backend is "postgres" or "memory", reported by the health endpoint.
	Backend          string
	UserHandler      *users.Handler
	DocumentHandler  *documents.Handler
	AnalysisHandler  *analysis.Handler
	RecordHandler    *records.Handler
	DashboardHandler *dashboard.Handler
	GoogleAuth       *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.CORSAllowOrigin),
		middleware.Auth(deps.Tokens),
	)

	r.GET("/metrics", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4", []byte(metrics.Render()))
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "ok", "database": deps.Backend})
	})

	api.POST("/auth/register", deps.UserHandler.Register)
	api.POST("/auth/login", deps.UserHandler.Login)
	api.GET("/auth/me", deps.UserHandler.Me)
	api.PUT("/auth/gemini-key", deps.UserHandler.SetGeminiKey)
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	api.POST("/documents", deps.DocumentHandler.Upload)
	api.GET("/documents", deps.DocumentHandler.List)

	// Analyses hit the external provider; keep a per-user budget on them.
	analyses := api.Group("/analysis")
	analyses.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYSIS": {Rate: 0.5, Burst: 3},
		},
		DefaultGroup: "ANALYSIS",
	}))
	analyses.POST("/hair", deps.AnalysisHandler.Hair)
	analyses.POST("/document", deps.AnalysisHandler.Document)

	api.GET("/records", deps.RecordHandler.List)
	api.POST("/records", deps.RecordHandler.Create)

	api.GET("/dashboard", deps.DashboardHandler.Summary)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
