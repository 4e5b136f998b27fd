package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dr-baseline/internal/api/models"
	"dr-baseline/internal/model"
	"dr-baseline/internal/store"
)

// MeterHandler handles meter-data ingest and customer listing.
type MeterHandler struct {
	store *store.MemoryStore
}

func NewMeterHandler(st *store.MemoryStore) *MeterHandler {
	return &MeterHandler{store: st}
}

// IngestBatch handles POST /api/v1/meter-data/batch
func (h *MeterHandler) IngestBatch(c *gin.Context) {
	var req models.BatchIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	samples := make([]model.DemandSample, 0, len(req.Records))
	for _, r := range req.Records {
		samples = append(samples, model.DemandSample{
			CustomerID: r.CustomerID,
			Timestamp:  r.Timestamp,
			DemandKW:   r.KW,
		})
	}

	inserted, err := h.store.Put(samples...)
	if err != nil {
		writeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, models.IngestResponse{
		Status:   "ok",
		Inserted: inserted,
	})
}

// ListCustomers handles GET /api/v1/customers
func (h *MeterHandler) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customers": h.store.Customers()})
}
