package main

import (
	"fmt"
	"log"

	"backend/configs"
	"backend/middlewares"
	"backend/repository"
	"backend/routes"
	"backend/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()
	if err := configs.SeedReports(); err != nil {
		log.Fatalf("seed reports failed: %v", err)
	}

	// The in-memory store is the source of truth; sqlite is a write-through
	// archive so restarts keep the collection.
	repo := repository.NewReportRepository(configs.DB())
	st, err := store.NewWithArchive(repo)
	if err != nil {
		log.Fatalf("hydrate report store failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, st, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
