package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stratsim/internal/audit"
	"stratsim/internal/compound"
	"stratsim/internal/repository"
	"stratsim/internal/service"
)

type StrategyHandler struct {
	Repo    repository.Repository
	Service *service.StrategyService
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/strategies")
	group.GET("", h.listStrategies)
	group.POST("", h.saveStrategy)
	group.GET("/:name", h.getStrategy)
	group.GET("/:name/stats", h.stats)
	group.PUT("/:name/params", h.updateParams)
	group.POST("/:name/enable", h.enableStrategy)
	group.POST("/:name/disable", h.disableStrategy)
	group.POST("/:name/run", h.runStrategy)
	group.DELETE("/:name", h.deleteStrategy)
}

func (h *StrategyHandler) listStrategies(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListStrategies(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

type saveStrategyRequest struct {
	Name        string                      `json:"name"`
	DisplayName string                      `json:"display_name"`
	Description string                      `json:"description"`
	Enabled     *bool                       `json:"enabled"`
	Params      compound.StrategyParameters `json:"params"`
}

// @Summary Create or update a saved strategy
// @Tags strategies
// @Accept json
// @Param strategy body saveStrategyRequest true "Strategy"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies [post]
func (h *StrategyHandler) saveStrategy(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req saveStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	item, err := h.Service.Save(c.Request.Context(), service.SaveStrategyInput{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Enabled:     req.Enabled,
		Params:      req.Params,
	})
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	audit.LogBestEffort(c, "strategy_saved", "info", map[string]any{"name": req.Name})
	Ok(c, item, nil)
}

func (h *StrategyHandler) getStrategy(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	item, err := h.Repo.GetStrategyByName(c.Request.Context(), name)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "strategy not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Derived stats for a saved strategy
// @Tags strategies
// @Param name path string true "Strategy name"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{name}/stats [get]
func (h *StrategyHandler) stats(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	strat, err := h.Repo.GetStrategyByName(c.Request.Context(), name)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if strat == nil {
		Error(c, http.StatusNotFound, "strategy not found", nil)
		return
	}
	// Serve the updater's snapshot when present, compute fresh otherwise.
	if len(strat.Stats) > 0 {
		var snapshot map[string]any
		if err := json.Unmarshal(strat.Stats, &snapshot); err == nil && len(snapshot) > 0 {
			Ok(c, snapshot, nil)
			return
		}
	}
	params, err := service.ParseStrategyParams(strat.Params)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	derived, err := compound.ComputeDerivedStats(params.WinProbabilityPct, params.RewardToRisk, params.OpportunitiesPerPeriod)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, derived, nil)
}

func (h *StrategyHandler) updateParams(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	var params compound.StrategyParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	if err := h.Service.UpdateParams(c.Request.Context(), name, params); err != nil {
		if errors.Is(err, service.ErrStrategyNotFound) {
			Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	audit.LogBestEffort(c, "strategy_params_updated", "info", map[string]any{"name": name})
	Ok(c, gin.H{"name": name}, nil)
}

func (h *StrategyHandler) enableStrategy(c *gin.Context) {
	h.setEnabled(c, true)
}

func (h *StrategyHandler) disableStrategy(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *StrategyHandler) setEnabled(c *gin.Context, enabled bool) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	if err := h.Repo.SetStrategyEnabled(c.Request.Context(), name, enabled); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	action := "strategy_disabled"
	if enabled {
		action = "strategy_enabled"
	}
	audit.LogBestEffort(c, action, "info", map[string]any{"name": name, "enabled": enabled})
	Ok(c, gin.H{"name": name, "enabled": enabled}, nil)
}

// @Summary Project a saved strategy
// @Tags strategies
// @Param name path string true "Strategy name"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{name}/run [post]
func (h *StrategyHandler) runStrategy(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	run, proj, err := h.Service.Run(c.Request.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStrategyNotFound):
			Error(c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrStrategyDisabled):
			Error(c, http.StatusConflict, err.Error(), nil)
		default:
			Error(c, http.StatusBadGateway, err.Error(), nil)
		}
		return
	}
	audit.LogBestEffort(c, "strategy_projected", "info", map[string]any{
		"name":    name,
		"run_id":  run.ID,
		"outcome": string(proj.Outcome),
	})
	Ok(c, projectionPayload(run.ID, proj), nil)
}

func (h *StrategyHandler) deleteStrategy(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	existing, err := h.Repo.GetStrategyByName(c.Request.Context(), name)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if existing == nil {
		Error(c, http.StatusNotFound, "strategy not found", nil)
		return
	}
	if err := h.Repo.DeleteStrategy(c.Request.Context(), name); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	audit.LogBestEffort(c, "strategy_deleted", "info", map[string]any{"name": name})
	Ok(c, gin.H{"name": name}, nil)
}
