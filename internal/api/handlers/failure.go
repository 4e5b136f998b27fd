package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dr-baseline/internal/api/models"
	"dr-baseline/internal/model"
)

// writeFailure maps a typed domain failure onto the error envelope.
// All kinds reflect bad input or missing history, so only NoData
// deviates from 400.
func writeFailure(c *gin.Context, err error) {
	var f *model.Failure
	if errors.As(err, &f) {
		status := http.StatusBadRequest
		if f.Kind == model.NoData {
			status = http.StatusNotFound
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    string(f.Kind),
				Message: f.Message,
				Details: f.Details,
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}
