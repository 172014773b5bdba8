package dbtime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestUseClockStoresRequestInstant(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, wib)

	app := fiber.New()
	app.Use(UseClock(FixedClock(fixed)))

	var gotNow time.Time
	var gotLoc *time.Location
	app.Get("/", func(c *fiber.Ctx) error {
		gotNow = Now(c)
		gotLoc = Location(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1); err != nil {
		t.Fatalf("request: %v", err)
	}
	if !gotNow.Equal(fixed) {
		t.Errorf("Now = %s, want %s", gotNow, fixed)
	}
	if gotLoc != wib {
		t.Errorf("Location = %v, want %v", gotLoc, wib)
	}
}

func TestNowFallsBackToUTC(t *testing.T) {
	app := fiber.New()
	var loc *time.Location
	app.Get("/", func(c *fiber.Ctx) error {
		loc = Now(c).Location()
		return nil
	})
	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1); err != nil {
		t.Fatalf("request: %v", err)
	}
	if loc != time.UTC {
		t.Errorf("fallback location = %v", loc)
	}
}

func TestSystemClockLocation(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	if got := SystemClock(wib)().Location(); got != wib {
		t.Errorf("SystemClock location = %v", got)
	}
	if got := SystemClock(nil)().Location(); got != time.UTC {
		t.Errorf("SystemClock(nil) location = %v", got)
	}
}
