package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brewhouse/config"
	deliverycontext "brewhouse/internal/delivery/context"
	"brewhouse/internal/testutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "reuses client id", header: "req-123", wantSame: true},
		{name: "generates when missing", header: ""},
		{name: "replaces oversized id", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seenInContext string
			handler := NewRequestIDMiddleware(testutil.DiscardLogger()).Process(func(c echo.Context) error {
				seenInContext = deliverycontext.GetRequestIDFromContext(c.Request().Context())
				assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

				return c.NoContent(http.StatusNoContent)
			})
			require.NoError(t, handler(c))

			got := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.NotEmpty(t, got)
			assert.Equal(t, got, seenInContext)
			if tt.wantSame {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}
		})
	}
}

func TestLoggerMiddleware_PassesErrorsThrough(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Debug = true

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/boom", nil), httptest.NewRecorder())

	handler := NewLoggerMiddleware(testutil.DiscardLogger(), cfg).Handle(func(echo.Context) error {
		return echo.ErrTeapot
	})

	assert.ErrorIs(t, handler(c), echo.ErrTeapot)
}
