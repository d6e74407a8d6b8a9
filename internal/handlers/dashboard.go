package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/josephnc/cc-charts/internal/logger"
	"github.com/josephnc/cc-charts/internal/services"
)

// dashboardPage registers the single widget container and enqueues the client
// bundle: babel-standalone, prop-types and Recharts from CDN, then the widget
// script last, served as text/babel so the runtime transpiler picks it up.
// These assets are emitted only by this page.
const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Dashboard</title>
<style>
.postbox { max-width: 640px; margin: 2em auto; border: 1px solid #c3c4c7; background: #fff; }
.postbox h2 { margin: 0; padding: 8px 12px; border-bottom: 1px solid #c3c4c7; font-size: 14px; }
.inside { padding: 12px; min-height: 320px; }
</style>
</head>
<body>
<div class="postbox">
	<h2>{{.WidgetTitle}}</h2>
	<div class="inside">
		<div id="{{.WidgetID}}"></div>
	</div>
</div>
<script>window.ccChartsToken = "{{.Token}}";</script>
<script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
<script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
<script src="https://unpkg.com/@babel/standalone/babel.min.js"></script>
<script src="https://unpkg.com/prop-types/prop-types.min.js"></script>
<script src="https://unpkg.com/recharts/umd/Recharts.js"></script>
<script type="text/babel" src="/assets/widget.js"></script>
</body>
</html>
`

type DashboardHandler struct {
	log         *logger.Logger
	authService services.AuthService
	tmpl        *template.Template
}

func NewDashboardHandler(log *logger.Logger, authService services.AuthService) *DashboardHandler {
	return &DashboardHandler{
		log:         log.With("handler", "DashboardHandler"),
		authService: authService,
		tmpl:        template.Must(template.New("dashboard").Parse(dashboardPage)),
	}
}

// GET /dashboard
//
// The page stands in for the host admin dashboard, so it mints a short-lived
// editor token for the widget the way the host would hand out a nonce.
func (dh *DashboardHandler) Render(c *gin.Context) {
	token, err := dh.authService.IssueToken(uuid.New(), services.RoleEditor)
	if err != nil {
		dh.log.Error("Failed to issue widget token", "error", err)
		c.String(http.StatusInternalServerError, "dashboard unavailable")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := dh.tmpl.Execute(c.Writer, gin.H{
		"WidgetTitle": "CC Chart",
		"WidgetID":    services.Slug + "_widget",
		"Token":       token,
	}); err != nil {
		dh.log.Error("Failed to render dashboard", "error", err)
	}
}
