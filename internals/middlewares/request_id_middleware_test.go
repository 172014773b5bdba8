package middlewares

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	helper "tuition_backend/internals/helpers"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestRequestIDLogsRenderedStatus(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(RequestID(0))
	app.Use(RecoveryMiddleware())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { panic("kaboom") })
	app.Get("/gone", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusGone, "gone") })

	tests := []struct {
		path   string
		status int
	}{
		{"/ok", http.StatusOK},
		{"/missing", http.StatusNotFound},
		{"/boom", http.StatusInternalServerError},
		{"/gone", http.StatusGone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf := captureLog(t)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("response status = %d, want %d", resp.StatusCode, tt.status)
			}
			var line string
			for _, l := range strings.Split(buf.String(), "\n") {
				if strings.HasPrefix(l, "[REQ]") {
					line = l
				}
			}
			want := "status=" + strconv.Itoa(tt.status)
			if !strings.Contains(line, want+" ") {
				t.Errorf("log line %q does not contain %q", line, want)
			}
		})
	}
}

func TestRequestIDEchoesHeader(t *testing.T) {
	captureLog(t)
	app := fiber.New()
	app.Use(RequestID(0))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(c.Locals("reqid").(string)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if got := resp.Header.Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("%s = %q, want abc-123", HeaderRequestID, got)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if got := resp.Header.Get(HeaderRequestID); len(got) != 36 {
		t.Errorf("generated id = %q, want uuid", got)
	}
}
