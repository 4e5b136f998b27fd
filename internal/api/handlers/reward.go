package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dr-baseline/internal/api/models"
	"dr-baseline/internal/model"
	"dr-baseline/internal/reward"
)

// RewardHandler handles incentive computation requests.
type RewardHandler struct {
	engine *reward.Engine
}

func NewRewardHandler(engine *reward.Engine) *RewardHandler {
	return &RewardHandler{engine: engine}
}

// ComputeReward handles POST /api/v1/dr/day-select/reward
func (h *RewardHandler) ComputeReward(c *gin.Context) {
	var req models.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.engine.ComputeReward(model.Event{
		CustomerID:         req.CustomerID,
		Start:              req.EventStart,
		End:                req.EventEnd,
		ContractCapacityKW: req.ContractCapacityKW,
	}, req.CommittedCapacityKW)
	if err != nil {
		writeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RewardResponse{
		ID:                  uuid.NewString(),
		Baseline:            BuildCBLResponse(result.Baseline),
		ActualAvgKW:         result.ActualAvgKW,
		ActualReductionKW:   result.ActualReductionKW,
		CommittedCapacityKW: req.CommittedCapacityKW,
		ExecutionRate:       result.ExecutionRate,
		ReductionRatio:      result.ReductionRatio,
		TariffRate:          result.TariffRate,
		DurationHours:       result.DurationHours,
		RewardAmount:        result.RewardAmount,
	})
}

// ListTariffs handles GET /api/v1/tariffs
func (h *RewardHandler) ListTariffs(c *gin.Context) {
	tariffs := make([]models.TariffInfo, 0, len(h.engine.Tariffs()))
	for _, t := range h.engine.Tariffs() {
		tariffs = append(tariffs, models.TariffInfo{
			DurationHours: t.DurationHours,
			Rate:          t.Rate,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tariffs": tariffs})
}
