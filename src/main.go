package main

import (
	"log"
	"net/http"
	"os"
	"regexp"
	"tawheed/src/boot"
	"tawheed/src/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func registerRoutes(router *gin.Engine) {
	apiv1 := apiv1Group(router)

	auth := apiv1.Group("/auth")
	guestAuthRoutes(auth)
	authorized := auth.Group("")
	authorized.Use(middlewares.AuthMiddleware)
	authHandlers(authorized)

	bookings := apiv1.Group("/bookings")
	bookings.Use(middlewares.AuthMiddleware)
	bookingHandlers(bookings)
	adminBookings := apiv1.Group("/bookings/admin")
	adminBookings.Use(middlewares.AuthMiddleware)
	adminBookingHandlers(adminBookings)

	packageHandlers(apiv1.Group("/packages"))
	cmsHandlers(apiv1.Group("/cms"))
	contactHandlers(apiv1.Group("/contact"))
}

func main() {
	boot.InitDb()
	boot.SeedSuperAdmin()

	router := setupRouter()

	apiEnv := os.Getenv("API_ENV")
	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
