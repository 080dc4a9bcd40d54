package webserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the stores the admin API reads and writes.
type Deps struct {
	Templates Templates
	Runs      Runs
	Limiter   *RateLimiter
}

// New builds the admin router.
func New(secret []byte, origins []string, deps Deps) *gin.Engine {
	g := gin.New()
	g.Use(gin.Recovery())
	attachRoutes(g, secret, origins, deps)
	return g
}

func attachRoutes(r *gin.Engine, secret []byte, origins []string, deps Deps) {
	if len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := deps.Limiter
	if limiter == nil {
		limiter = NewRateLimiter(60, time.Minute)
	}

	v1 := r.Group("/v1")
	v1.Use(JWTMiddleware(secret), RateLimitMiddleware(limiter))
	{
		v1.GET("/templates/:profile", deps.Templates.List)
		v1.GET("/templates/:profile/:role", deps.Templates.Active)
		v1.PUT("/templates/:profile/:role", deps.Templates.Publish)
		v1.GET("/runs/:guild/:channel", deps.Runs.Recent)
	}
}
