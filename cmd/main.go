package main

import (
	"os"

	"ratesboard/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Rates board API
// @version 1.0
// @description Exchange rate table with filtering, sorting, pagination, CSV export and notifications.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
