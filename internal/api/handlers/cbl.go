package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dr-baseline/internal/api/models"
	"dr-baseline/internal/baseline"
	"dr-baseline/internal/model"
)

// CBLHandler handles baseline computation requests.
type CBLHandler struct {
	engine *baseline.Engine
}

func NewCBLHandler(engine *baseline.Engine) *CBLHandler {
	return &CBLHandler{engine: engine}
}

// ComputeCBL handles POST /api/v1/dr/day-select/cbl
func (h *CBLHandler) ComputeCBL(c *gin.Context) {
	var req models.CBLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.engine.ComputeCBL(model.Event{
		CustomerID:         req.CustomerID,
		Start:              req.EventStart,
		End:                req.EventEnd,
		ContractCapacityKW: req.ContractCapacityKW,
	})
	if err != nil {
		writeFailure(c, err)
		return
	}

	resp := BuildCBLResponse(result)
	resp.ID = uuid.NewString()
	c.JSON(http.StatusOK, resp)
}

// ScanEligibility handles POST /api/v1/dr/day-select/eligibility
func (h *CBLHandler) ScanEligibility(c *gin.Context) {
	var req models.EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	rows, err := h.engine.ScanEligibility(model.Event{
		CustomerID: req.CustomerID,
		Start:      req.EventStart,
		End:        req.EventEnd,
	})
	if err != nil {
		writeFailure(c, err)
		return
	}

	days := make([]models.EligibilityDay, len(rows))
	for i, r := range rows {
		days[i] = models.EligibilityDay{
			Date:        r.Date.String(),
			Status:      string(r.Status),
			SampleCount: r.SampleCount,
			WindowAvgKW: r.WindowAvgKW,
		}
	}

	c.JSON(http.StatusOK, models.EligibilityResponse{
		ID:             uuid.NewString(),
		CustomerID:     req.CustomerID,
		QualifiedCount: baseline.QualifiedCount(rows),
		RequiredCount:  h.engine.Config().MinBaselineDays,
		Days:           days,
	})
}

// BuildCBLResponse converts an engine result into the response DTO.
func BuildCBLResponse(result *baseline.Result) models.CBLResponse {
	days := make([]string, len(result.BaselineSourceDays))
	for i, d := range result.BaselineSourceDays {
		days[i] = d.String()
	}
	return models.CBLResponse{
		CustomerID:         result.CustomerID,
		EventStart:         result.EventStart,
		EventEnd:           result.EventEnd,
		CBLKW:              result.CBLKW,
		BaselineSourceDays: days,
		Method:             baseline.Method,
		Detail:             result.Detail(),
	}
}
