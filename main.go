package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/helpdesk-app/config"
	"github.com/yeremiapane/helpdesk-app/database"
	"github.com/yeremiapane/helpdesk-app/router"
	"github.com/yeremiapane/helpdesk-app/services"
	"github.com/yeremiapane/helpdesk-app/utils"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	mailer := services.NewMailerFromEnv()
	if mailer == nil {
		utils.InfoLogger.Println("SMTP_HOST not set, outbound mail disabled")
	}

	r := router.SetupRouter(db, mailer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
