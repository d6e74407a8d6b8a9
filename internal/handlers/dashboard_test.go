package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/josephnc/cc-charts/internal/logger"
	"github.com/josephnc/cc-charts/internal/services"
)

func TestDashboardRendersWidgetContainer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	require.NoError(t, err)
	authService := services.NewAuthService(log, "test-secret", time.Hour)

	r := gin.New()
	r.GET("/dashboard", NewDashboardHandler(log, authService).Render)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	require.Contains(t, body, `id="cc-charts_widget"`)
	require.Contains(t, body, "CC Chart")
	require.Contains(t, body, `type="text/babel" src="/assets/widget.js"`)

	// The widget script must load after its chart and transpiler deps.
	require.Less(t, strings.Index(body, "babel.min.js"), strings.Index(body, "widget.js"))
	require.Less(t, strings.Index(body, "Recharts.js"), strings.Index(body, "widget.js"))
	require.Less(t, strings.Index(body, "prop-types.min.js"), strings.Index(body, "Recharts.js"))

	// The minted token must parse and carry an editor role.
	start := strings.Index(body, `window.ccChartsToken = "`)
	require.GreaterOrEqual(t, start, 0)
	rest := body[start+len(`window.ccChartsToken = "`):]
	token := rest[:strings.Index(rest, `"`)]
	claims, err := authService.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, services.RoleEditor, claims.Role)
}
