package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"safetybot/internal/ai"
	"safetybot/internal/api"
	"safetybot/internal/config"
)

// The lite binary serves the chat endpoint without accounts or storage,
// suitable for single-process or serverless deployment.
func main() {
	log.SetPrefix("safetybot-lite: ")
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var responder ai.Responder = ai.NewStaticResponder()
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiResponder(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("init gemini client: %v", err)
		}
		responder = gemini
	}

	router := gin.Default()
	handler := api.NewLiteHandler(responder, cfg.AICallTimeout())
	handler.RegisterRoutes(router)
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	log.Printf("listening on %s", cfg.HTTPBind)
	if err := router.Run(cfg.HTTPBind); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
