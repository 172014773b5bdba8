// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Nama locals yang diisi middleware UseClock
const (
	LocRequestNow = "request_now" // time.Time, "sekarang" untuk satu request
	LocAppLoc     = "app_loc"     // *time.Location
)

// Clock adalah sumber "sekarang". Semua operasi yang butuh waktu menerima
// hasil Clock sebagai parameter, bukan membaca jam global.
type Clock func() time.Time

// SystemClock: jam sistem di timezone aplikasi.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock: selalu mengembalikan t (untuk test).
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// UseClock menyimpan satu instant "sekarang" per request ke locals,
// supaya semua field turunan (enrollment date, payment date, overdue) konsisten.
func UseClock(clock Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := clock()
		c.Locals(LocRequestNow, now)
		c.Locals(LocAppLoc, now.Location())
		return c.Next()
	}
}

// Now mengambil instant request dari locals. Fallback: jam sistem UTC.
func Now(c *fiber.Ctx) time.Time {
	if c != nil {
		if v, ok := c.Locals(LocRequestNow).(time.Time); ok && !v.IsZero() {
			return v
		}
	}
	return time.Now().UTC()
}

// Location dari locals. Fallback: UTC.
func Location(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocAppLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return time.UTC
}

// ToAppTimePtr mengonversi waktu (biasanya dari DB) ke timezone aplikasi.
func ToAppTimePtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	if loc == nil {
		return t
	}
	v := t.In(loc)
	return &v
}
