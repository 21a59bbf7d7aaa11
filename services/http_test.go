package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/services/handlers"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

type stubSearchService struct{}

func (stubSearchService) SearchPosts(req dto.AdminSearchRequest) (*dto.AdminSearchResponse, error) {
	return &dto.AdminSearchResponse{}, nil
}

func newErrorHandlerApp() *fiber.App {
	httpSvc := &HttpService{}
	return fiber.New(fiber.Config{
		ErrorHandler: httpSvc.handleError,
	})
}

func TestRateLimitRejectionEnvelope(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestRateLimiter(&clock)

	app := newErrorHandlerApp()
	app.Get("/login", limiter.RateLimit(RateClassLogin), func(c *fiber.Ctx) error {
		return shared.ResponseOK(c, nil)
	})

	var resp *http.Response
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(fiber.MethodGet, "/login", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1")

		var err error
		resp, err = app.Test(req)
		require.NoError(t, err)
	}

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "900", resp.Header.Get("Retry-After"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Kind    string `json:"kind"`
		Data    struct {
			RetryAfter int `json:"retry_after"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))

	assert.Equal(t, fiber.StatusTooManyRequests, envelope.Code)
	assert.Equal(t, shared.KindRateLimited, envelope.Kind)
	assert.Equal(t, "Too many login attempts. Please try again later.", envelope.Message)
	assert.Equal(t, 900, envelope.Data.RetryAfter)
}

func TestValidationFailureEnvelope(t *testing.T) {
	app := newErrorHandlerApp()
	handler := handlers.NewAdminHandler(stubSearchService{}, nil)
	app.Get("/search", handler.SearchPosts)

	req := httptest.NewRequest(fiber.MethodGet, "/search?query=dance&type=post_title&limit=51", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Code    int                   `json:"code"`
		Message string                `json:"message"`
		Kind    string                `json:"kind"`
		Data    []dto.ValidationError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))

	assert.Equal(t, fiber.StatusBadRequest, envelope.Code)
	assert.Equal(t, shared.KindValidation, envelope.Kind)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Limit", envelope.Data[0].Field)
}
