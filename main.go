package main

import (
	"fmt"
	"log"

	"github.com/IT2357/Hotel-Management-sub000/configs"
	"github.com/IT2357/Hotel-Management-sub000/middlewares"
	"github.com/IT2357/Hotel-Management-sub000/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}
	if err := configs.SeedManager(); err != nil {
		log.Fatalf("seed manager failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, configs.DB(), cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
