package api

import (
	"log"

	"github.com/Sorawitt/account-svc/config"
	"github.com/Sorawitt/account-svc/infra/queue"
	"github.com/Sorawitt/account-svc/internal/api/rest/handlers"
	"github.com/Sorawitt/account-svc/internal/domain"
	"github.com/Sorawitt/account-svc/internal/helper"
	"github.com/Sorawitt/account-svc/internal/repository"
	"github.com/Sorawitt/account-svc/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(&domain.Account{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	auth := helper.SetupAuth(cfg.AccessSecret, cfg.TokenTTL)

	// ---------- Repository / Service / Handler ----------
	accountRepo := repository.NewAccountRepository(db)
	accountSvc := services.NewAccountService(accountRepo, kafkaProducer, auth, cfg.OTPTTL)
	accountHandler := handlers.NewAccountHandler(accountSvc, auth)
	accountHandler.SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	log.Println("listening on", cfg.ServerPort)
	log.Fatal(app.Listen(cfg.ServerPort))
}
