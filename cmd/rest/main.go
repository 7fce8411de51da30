package main

import (
	"context"
	"log"

	"pdf-knowledge-be/internal/bootstrap"
	"pdf-knowledge-be/internal/config"
	"pdf-knowledge-be/internal/server"
	"pdf-knowledge-be/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	color.Cyan("📚 PDF Knowledge Assistant")
	color.Yellow("Upload PDFs, then ask questions over the chat socket.")

	// 5. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
