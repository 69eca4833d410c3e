package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/scaffold-report-service/internal/observability"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func testApp(t *testing.T, handler fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	app.Get("/probe", handler)
	return app
}

func probe(t *testing.T, app *fiber.App) (int, errorBody) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlingMiddleware(t *testing.T) {
	t.Run("credential rejections share one body", func(t *testing.T) {
		rejections := []error{
			apperrors.NewUnauthenticated("missing or malformed authorization header"),
			apperrors.NewTokenRevoked(),
			apperrors.NewTokenInvalid(errors.New("signature is invalid")),
		}

		for _, rejection := range rejections {
			rejection := rejection
			app := testApp(t, func(c *fiber.Ctx) error { return rejection })

			status, body := probe(t, app)
			require.Equal(t, 401, status)
			require.Equal(t, "UNAUTHORIZED", body.Error.Code)
			require.Equal(t, "authentication required", body.Error.Message)
			require.Empty(t, body.Error.Details)
		}
	})

	t.Run("forbidden keeps its own code", func(t *testing.T) {
		app := testApp(t, func(c *fiber.Ctx) error {
			return apperrors.NewForbidden("insufficient role")
		})

		status, body := probe(t, app)
		require.Equal(t, 403, status)
		require.Equal(t, "FORBIDDEN", body.Error.Code)
	})

	t.Run("validation details are preserved", func(t *testing.T) {
		app := testApp(t, func(c *fiber.Ctx) error {
			return apperrors.NewValidationError("invalid payload", map[string]any{"field": "height"})
		})

		status, body := probe(t, app)
		require.Equal(t, 400, status)
		require.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		require.Equal(t, "height", body.Error.Details["field"])
	})

	t.Run("panics surface as internal errors", func(t *testing.T) {
		app := testApp(t, func(c *fiber.Ctx) error {
			panic("unexpected")
		})

		status, body := probe(t, app)
		require.Equal(t, 500, status)
		require.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	})

	t.Run("generic errors do not leak their message", func(t *testing.T) {
		app := testApp(t, func(c *fiber.Ctx) error {
			return errors.New("pq: connection refused")
		})

		status, body := probe(t, app)
		require.Equal(t, 500, status)
		require.Equal(t, "internal server error", body.Error.Message)
	})
}

func TestRequestLoggerSeesErrorStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), 5*time.Second)
	app.Get("/probe", func(c *fiber.Ctx) error {
		return apperrors.NewForbidden("insufficient role")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, int64(403), fields["status"])
}

func TestRequestTimeoutMiddleware(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 2*time.Second)

	var hadDeadline bool
	app.Get("/probe", func(c *fiber.Ctx) error {
		_, hadDeadline = c.UserContext().Deadline()
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.True(t, hadDeadline)
}
