package main

import (
	"booker-api/core/logger"
	"booker-api/core/server"
)

// @title Booker API
// @version 1.0
// @description Booker overlay calendar and team event types

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
