package app

import (
	"database/sql"
	"fmt"
	"log"

	"suilog/internal/config"
	"suilog/internal/handlers"
	"suilog/internal/middleware"
	"suilog/internal/pdf"
	"suilog/internal/repositories"
	"suilog/internal/routes"
	"suilog/internal/services"
	"suilog/internal/sui"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "suilog/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.JWT.Secret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	taskRepo := repositories.NewTaskRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	confirmationRepo := repositories.NewConfirmationRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	tgService, err := services.NewTelegramService(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		log.Printf("[app] telegram disabled: %v", err)
	}

	suiClient := sui.NewClient(
		cfg.Sui.RPCURL,
		cfg.Sui.PackageID,
		cfg.Sui.Sender,
		cfg.Sui.ImageURL,
		cfg.Sui.GasBudget,
		cfg.Sui.DryRun,
	)

	certificateGen := pdf.NewCertificateGenerator(cfg.Files.RootDir)

	taskService := services.NewTaskService(taskRepo, tgService)
	confirmationService := services.NewConfirmationService(confirmationRepo, emailService)
	reportService := services.NewReportService(taskRepo)
	projectService := services.NewProjectService(
		projectRepo,
		taskRepo,
		suiClient,
		certificateGen,
		emailService,
		tgService,
		confirmationService,
		cfg.Completion.RequireConfirmation,
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler()
	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Router ===
	r := gin.Default()
	r.Use(corsMiddleware())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(r, authHandler, taskHandler, projectHandler, reportHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[app] listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
