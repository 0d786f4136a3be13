package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"conference-central/cache"
	"conference-central/config"
	"conference-central/database"
	"conference-central/handlers"
	"conference-central/router"
	"conference-central/service"
	"conference-central/tasks"
)

func main() {
	store, err := database.DBInit(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	queue := tasks.NewQueue()
	svc := service.New(store, cache.NewSlots(), queue, service.DefaultConfig())
	svc.RegisterTaskHandlers(queue)
	queue.Start()
	defer queue.Stop()

	handlers.Init(svc, store)

	app := fiber.New()

	router.SetupRoutes(app)

	addr, err := config.GetSecret("LISTEN_ADDR")
	if err != nil {
		addr = ":80"
	}
	log.Fatal(app.Listen(addr))
}
