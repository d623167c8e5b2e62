package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/peoplehq/orgdir/authz"
	"github.com/peoplehq/orgdir/handlers"
	"github.com/peoplehq/orgdir/internal/config"
	"github.com/peoplehq/orgdir/services"
)

// NewGinRouter wires services and handlers onto a gin engine.
// rdb may be nil (cache disabled).
func NewGinRouter(pg *sql.DB, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize services
	jwtService := services.NewJWTService(config.App.JWTSecret, config.App.TokenExpiry)
	authService := services.NewAuthService(pg, jwtService)

	// Authorization backend (membership ledger + gate + repositories)
	gate, ledger, orgRepo, userLookup := authz.NewSimpleBackend(pg)
	orgService := authz.NewOrgService(gate, ledger, orgRepo, userLookup)
	orgService.RequireMemberToAdd = config.App.RequireMemberToAdd

	userService := services.NewUserService(pg, rdb, gate)
	if config.App.UserCacheTTL > 0 {
		userService.CacheTTL = config.App.UserCacheTTL
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	orgHandler := handlers.NewOrgHandler(orgService)
	authMiddleware := handlers.NewAuthMiddleware(jwtService)

	// PUBLIC ENDPOINTS (no authentication required)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// PROTECTED ENDPOINTS (bearer token required)
	api := r.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/users/:id", userHandler.GetUser)

		api.GET("/organisations", orgHandler.ListOrgs)
		api.POST("/organisations", orgHandler.CreateOrg)
		api.GET("/organisations/:orgId", orgHandler.GetOrg)
		api.GET("/organisations/:orgId/users", orgHandler.ListMembers)
		api.POST("/organisations/:orgId/users", orgHandler.AddMember)
	}

	return r
}
