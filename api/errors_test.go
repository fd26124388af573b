package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: errors.Wrap(domain.ErrAirlineNotFound, "delete"), expected: http.StatusNotFound},
		{name: "not empty", err: domain.ErrAirlineNotEmpty, expected: http.StatusConflict},
		{name: "malformed", err: domain.ErrMalformedSnapshot, expected: http.StatusUnprocessableEntity},
		{name: "overflowing price", err: errors.Wrap(flights.ErrInvalidDistance, "derived price overflows"), expected: http.StatusBadRequest},
		{name: "unexpected", err: errors.New("disk full"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)

			assert.Equal(t, tc.expected, w.Code)
			assert.JSONEq(t, `{"error":"`+tc.err.Error()+`"}`, w.Body.String())
		})
	}
}
