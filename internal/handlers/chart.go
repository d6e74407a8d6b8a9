package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/josephnc/cc-charts/internal/logger"
	"github.com/josephnc/cc-charts/internal/response"
	"github.com/josephnc/cc-charts/internal/services"
)

type ChartHandler struct {
	log              *logger.Logger
	chartDataService services.ChartDataService
}

func NewChartHandler(log *logger.Logger, chartDataService services.ChartDataService) *ChartHandler {
	return &ChartHandler{
		log:              log.With("handler", "ChartHandler"),
		chartDataService: chartDataService,
	}
}

// GET /cc-charts/v1/data/:days
//
// Responds with a bare JSON array of samples for the lookback window. An
// empty window is a 200 with [], not an error.
func (ch *ChartHandler) GetData(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", services.ErrInvalidDays)
		return
	}

	samples, err := ch.chartDataService.DataForWindow(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDays) {
			response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
			return
		}
		ch.log.Error("Failed to load chart data", "days", days, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}

	response.RespondOK(c, samples)
}
