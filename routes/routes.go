package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pgstay-backend/controllers"
	"pgstay-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the public and admin route groups.
func SetupRouter(
	pc *controllers.PropertyController,
	bc *controllers.BookingController,
	vc *controllers.VisitController,
	sc *controllers.StorageController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		properties := api.Group("/properties")
		{
			properties.GET("", pc.ListProperties)
			properties.GET("/:id", pc.GetProperty)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.ListBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.POST("/pay-month", bc.PayMonth)
			bookings.POST("/pay-complete", bc.PayComplete)
		}

		visits := api.Group("/visits")
		{
			visits.POST("", vc.CreateVisit)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth())
		{
			admin.POST("/logout", controllers.Logout)

			admin.POST("/properties", pc.CreateProperty)
			admin.PUT("/properties/:id", pc.UpdateProperty)
			admin.PATCH("/properties/:id", pc.UpdateProperty)
			admin.DELETE("/properties/:id", pc.DeleteProperty)

			admin.GET("/visits", vc.ListVisits)
			admin.PATCH("/visits/:id", vc.UpdateVisit)

			admin.GET("/storage/orphans", sc.ListOrphans)
			admin.POST("/storage/cleanup", sc.Cleanup)
		}
	}

	return r
}
