package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStateUseCase struct {
	mock.Mock
}

func (m *MockStateUseCase) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStateUseCase) Load(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockStateUseCase) RestoreDefaults(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func stateRouter(service *MockStateUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewStateHandler(service).Register(router.Group("/api/v1"))
	return router
}

func TestStateHandler_save(t *testing.T) {
	mockService := &MockStateUseCase{}
	mockService.On("Save", mock.Anything).Return(nil).Once()
	mockService.On("Save", mock.Anything).Return(errors.New("disk full")).Once()
	router := stateRouter(mockService)

	w := serve(router, http.MethodPost, "/api/v1/state/save", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodPost, "/api/v1/state/save", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStateHandler_load(t *testing.T) {
	testCases := []struct {
		name     string
		ok       bool
		err      error
		expected int
	}{
		{name: "loaded", ok: true, expected: http.StatusOK},
		{name: "missing", ok: false, expected: http.StatusNotFound},
		{name: "malformed", err: errors.Wrap(domain.ErrMalformedSnapshot, "tickets"), expected: http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockStateUseCase{}
			mockService.On("Load", mock.Anything).Return(tc.ok, tc.err)
			mockService.On("RestoreDefaults", mock.Anything).Return(tc.ok, tc.err)
			router := stateRouter(mockService)

			assert.Equal(t, tc.expected, serve(router, http.MethodPost, "/api/v1/state/load", nil).Code)
			assert.Equal(t, tc.expected, serve(router, http.MethodPost, "/api/v1/state/reset", nil).Code)
		})
	}
}

func TestNewRouter_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(&MockFlightUseCase{}, &MockBookingUseCase{}, &MockStateUseCase{})

	w := serve(router, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
