package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"safetybot/internal/ai"
	"safetybot/internal/api"
	"safetybot/internal/auth"
	"safetybot/internal/config"
	"safetybot/internal/redis"
	"safetybot/internal/service/safety"
	"safetybot/internal/storage"
)

func main() {
	log.SetPrefix("safetybot: ")
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	db, err := storage.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache, err = redis.NewClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("connect redis: %v", err)
		}
		defer cache.Close()
	}

	safetyService := safety.NewService(db)
	if err := safetyService.EnsureAdminUser(ctx, cfg.AdminSeedPassword); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	var responder ai.Responder
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiResponder(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("init gemini client: %v", err)
		}
		responder = gemini
	} else {
		log.Println("no gemini api key configured, serving canned responses")
		responder = ai.NewStaticResponder()
	}

	authService := auth.NewService(db, cache, cfg.TokenTTL())

	scheduler, err := setupScheduler(ctx, cfg, authService)
	if err != nil {
		log.Fatalf("setup scheduler: %v", err)
	}
	defer func() { _ = scheduler.Shutdown() }()

	router := gin.Default()
	router.LoadHTMLGlob(cfg.TemplatesGlob)

	handler := api.NewHandler(safetyService, authService, responder, cfg.AICallTimeout())
	handler.RegisterRoutes(router)
	handler.RegisterPages(router)
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	log.Printf("listening on %s", cfg.HTTPBind)
	if err := router.Run(cfg.HTTPBind); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func setupScheduler(ctx context.Context, cfg *config.Config, authService *auth.Service) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.TokenPurgeEvery()),
		gocron.NewTask(func() {
			purged, err := authService.PurgeExpiredTokens(ctx)
			if err != nil {
				log.Printf("purge expired tokens: %v", err)
				return
			}
			if purged > 0 {
				log.Printf("purged %d expired tokens", purged)
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	scheduler.Start()
	return scheduler, nil
}
