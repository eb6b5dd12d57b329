package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/configs"
	database "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/databases"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/provider"
	paymentService "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/service"
	emailService "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/emails/service"
	notificationService "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/notifications/service"
	middlewares "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/middlewares"
	routes "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/route"
)

func main() {
	cfg := configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing; the per-request timeout mirrors the DB
	// statement_timeout so neither side outlives the other.
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 20*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.CorsMiddleware())

	database.ConnectDB()
	database.TunePool()
	database.WarmUp()

	// settlement pipeline wiring
	verifiers := map[string]provider.Verifier{}
	for _, v := range []provider.Verifier{
		provider.NewPaystack(cfg.PaystackSecretKey),
		provider.NewFlutterwave(cfg.FlutterwaveSecretKey),
	} {
		verifiers[v.Name()] = v
	}
	notifier := notificationService.NewDBNotifier(database.DB)
	emails := emailService.NewEmailService(database.DB, &emailService.LogMailer{From: cfg.MailFrom})
	settle := paymentService.NewSettlementService(
		paymentService.NewGormStore(database.DB),
		verifiers,
		notifier,
		emails,
	)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, database.DB, cfg, settle)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
