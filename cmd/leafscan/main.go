package main

import (
	"log"

	"github.com/krishimitra/leafscan/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ leafscan failed to start: %v", err)
	}
}
