package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"conforma_app_echo/internal/models"
	"conforma_app_echo/internal/services"
)

func main() {
	endpoint := flag.String("endpoint", "", "Webhook endpoint URL (e.g. https://hooks.example.com/conforma)")
	secret := flag.String("secret", "", "Shared secret sent as X-Api-Key (optional)")
	msg := flag.String("msg", "Test event from WebhookService", "Message body")
	flag.Parse()

	if *endpoint == "" {
		log.Fatal("Please provide an endpoint using -endpoint flag")
	}

	// Load envs
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found")
	}

	service := services.NewWebhookService(models.Integration{
		Name:     "cli-test",
		Endpoint: *endpoint,
		Secret:   *secret,
	})

	log.Printf("Sending test event to %s", services.NormalizeEndpoint(*endpoint))

	if err := service.SendEvent("test", *msg, nil); err != nil {
		log.Fatalf("Failed to send event: %v", err)
	}

	log.Println("Event sent successfully!")
}
