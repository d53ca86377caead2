package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"y4d-cms/internal/adapters/http/handlers"
	"y4d-cms/internal/adapters/http/middleware"
	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/adapters/persistence/repositories"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequestRepo records submissions; the embedded interface panics on
// anything the exercised paths never call.
type fakeRequestRepo struct {
	repositories.RegistrationRequestRepository
	created []*models.RegistrationRequest
}

func (f *fakeRequestRepo) Create(_ context.Context, req *models.RegistrationRequest) error {
	req.ID = uint(len(f.created) + 1)
	f.created = append(f.created, req)
	return nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, *response.Response) {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope response.Response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	return res, &envelope
}

func TestRootRoute(t *testing.T) {
	app := newTestApp()
	h := handlers.NewHealthHandler()
	app.Get("/", h.Root)

	res, envelope := doJSON(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, envelope.Success)
}

func TestHealthCheckWithoutDatabase(t *testing.T) {
	app := newTestApp()
	h := handlers.NewHealthHandler()
	app.Get("/health", h.HealthCheck)

	res, envelope := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.False(t, envelope.Success)
}

func TestUnknownRouteEnvelope(t *testing.T) {
	app := newTestApp()

	res, envelope := doJSON(t, app, http.MethodGet, "/no-such-route", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Error)
}

func TestSubmitRegistration(t *testing.T) {
	repo := &fakeRequestRepo{}
	svc := services.NewRegistrationService(repo, nil)
	h := handlers.NewRegistrationHandler(svc)

	app := newTestApp()
	app.Post("/api/v1/registrations", h.Submit)

	res, envelope := doJSON(t, app, http.MethodPost, "/api/v1/registrations",
		`{"name":"Asha Patel","email":"asha@example.org","mobile_number":"9876543210","address":"Pune"}`)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.True(t, envelope.Success)

	require.Len(t, repo.created, 1)
	assert.Equal(t, models.RequestPending, repo.created[0].Status)
}

func TestSubmitRegistrationValidation(t *testing.T) {
	repo := &fakeRequestRepo{}
	svc := services.NewRegistrationService(repo, nil)
	h := handlers.NewRegistrationHandler(svc)

	app := newTestApp()
	app.Post("/api/v1/registrations", h.Submit)

	res, envelope := doJSON(t, app, http.MethodPost, "/api/v1/registrations",
		`{"name":"Asha Patel","email":"not-an-email","mobile_number":"9876543210","address":"Pune"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, envelope.Success)
	assert.NotNil(t, envelope.Details)
	assert.Empty(t, repo.created)
}
