package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stratsim/internal/audit"
	"stratsim/internal/compound"
	"stratsim/internal/repository"
	"stratsim/internal/service"
)

type ProjectionHandler struct {
	Repo    repository.Repository
	Service *service.ProjectionService
}

func (h *ProjectionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/projections")
	group.POST("", h.runProjection)
	group.POST("/preview", h.previewProjection)
	group.GET("", h.listRuns)
	group.GET("/:id", h.getRun)
}

// @Summary Run a projection
// @Description Simulates the compounding loop for the given parameters and persists the run.
// @Tags projections
// @Accept json
// @Param params body compound.StrategyParameters true "Strategy parameters"
// @Success 200 {object} map[string]any
// @Router /api/v1/projections [post]
func (h *ProjectionHandler) runProjection(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var params compound.StrategyParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	if err := params.Validate(h.Service.Limits); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	run, proj, err := h.Service.Run(c.Request.Context(), params, nil)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	audit.LogBestEffort(c, "projection_run", "info", map[string]any{
		"run_id":  run.ID,
		"outcome": string(proj.Outcome),
		"periods": proj.PeriodsSimulated,
	})
	Ok(c, projectionPayload(run.ID, proj), nil)
}

// @Summary Preview a projection
// @Description Simulates without persisting anything.
// @Tags projections
// @Accept json
// @Param params body compound.StrategyParameters true "Strategy parameters"
// @Success 200 {object} map[string]any
// @Router /api/v1/projections/preview [post]
func (h *ProjectionHandler) previewProjection(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var params compound.StrategyParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	proj, err := h.Service.Preview(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, projectionPayload(0, proj), nil)
}

// @Summary List projection runs
// @Tags projections
// @Param strategy_id query int false "Filter by saved strategy"
// @Param outcome query string false "Filter by outcome"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]any
// @Router /api/v1/projections [get]
func (h *ProjectionHandler) listRuns(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListProjectionRunsParams{
		Outcome: strQueryPtr(c, "outcome"),
		Limit:   limit,
		Offset:  offset,
	}
	if id := intQuery(c, "strategy_id", 0); id > 0 {
		sid := uint64(id)
		params.StrategyID = &sid
	}
	if since := c.Query("since"); since != "" {
		if ts, err := time.Parse(time.RFC3339, since); err == nil {
			params.Since = &ts
		}
	}
	items, err := h.Repo.ListProjectionRuns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountProjectionRuns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Projection run detail
// @Tags projections
// @Param id path int true "Run ID"
// @Success 200 {object} map[string]any
// @Router /api/v1/projections/{id} [get]
func (h *ProjectionHandler) getRun(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id, ok := uint64Param(c, "id")
	if !ok {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetProjectionRunByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "projection run not found", nil)
		return
	}
	Ok(c, item, nil)
}

func projectionPayload(runID uint64, proj compound.Projection) gin.H {
	data := gin.H{
		"stats":             proj.Stats,
		"outcome":           proj.Outcome,
		"final_balance":     proj.FinalBalance,
		"periods_simulated": proj.PeriodsSimulated,
		"records":           proj.Records,
	}
	if runID != 0 {
		data["run_id"] = runID
	}
	return data
}
