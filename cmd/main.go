package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/planroomhq/planroom-server/config"
	"github.com/planroomhq/planroom-server/controllers"
	"github.com/planroomhq/planroom-server/routes"
	"github.com/planroomhq/planroom-server/services"
	"github.com/planroomhq/planroom-server/store/gormstore"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config.ConnectDB()

	codec, err := config.SecureCodec()
	if err != nil {
		log.Fatalf("secure codec: %v", err)
	}

	st := gormstore.New(config.DB)
	accounts := services.NewAccounts(st)
	rooms := services.NewRooms(st)
	plans := services.NewPlans(st, rooms, codec)
	exports := services.NewExports(st, rooms, codec, config.ExportDir())
	controllers.Init(accounts, rooms, plans, exports)

	r := gin.Default()

	allowed := strings.Split(os.Getenv("CORS_ORIGINS"), ",")
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, o := range allowed {
				if o != "" && origin == o {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	routes.SetupRoutes(r, st)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on port %s\n", port)
	r.Run(":" + port)
}
