package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/rollbook/attendance-back/internal/api"
	"github.com/rollbook/attendance-back/internal/config"
	"github.com/rollbook/attendance-back/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env")
	}

	cfg := config.Load()

	db.InitDB(cfg.DBUrl)

	r := api.SetupRouter(cfg)

	log.Println("server running on", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
