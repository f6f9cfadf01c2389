// Package main implements the entry point for the vocabulary trainer API
// server, which evaluates spoken Mandarin and Cantonese answers with an LLM
// judge and schedules spaced-repetition reviews from the verdicts.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := initializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
