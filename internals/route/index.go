// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tuition_backend/internals/configs"
	"tuition_backend/internals/constants"
	routeDetails "tuition_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) error {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	defaultAmount, err := cfg.DefaultBillingAmount()
	if err != nil {
		return err
	}

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Tuition routes...")
	api := app.Group(constants.APIPrefix)
	routeDetails.TuitionRoutes(api, db, defaultAmount)

	return nil
}
