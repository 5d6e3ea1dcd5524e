package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"stratsim/internal/compound"
	"stratsim/internal/models"
	"stratsim/internal/repository"
)

var (
	ErrStrategyNotFound = errors.New("strategy not found")
	ErrStrategyDisabled = errors.New("strategy disabled")
)

// StrategyService manages saved parameter sets and projects them on demand.
type StrategyService struct {
	Repo        repository.Repository
	Projections *ProjectionService
}

type SaveStrategyInput struct {
	Name        string
	DisplayName string
	Description string
	Enabled     *bool
	Params      compound.StrategyParameters
}

func (s *StrategyService) Save(ctx context.Context, in SaveStrategyInput) (*models.Strategy, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("repo unavailable")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	var lim compound.Limits
	if s.Projections != nil {
		lim = s.Projections.limits()
	}
	if err := in.Params.Validate(lim); err != nil {
		return nil, err
	}
	display := strings.TrimSpace(in.DisplayName)
	if display == "" {
		display = name
	}
	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	raw, _ := json.Marshal(in.Params)
	item := &models.Strategy{
		Name:        name,
		DisplayName: display,
		Description: strings.TrimSpace(in.Description),
		Enabled:     enabled,
		Params:      datatypes.JSON(raw),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.UpsertStrategy(ctx, item); err != nil {
		return nil, err
	}
	// Re-read so upserts over an existing name return the stored row.
	return s.Repo.GetStrategyByName(ctx, name)
}

func (s *StrategyService) UpdateParams(ctx context.Context, name string, params compound.StrategyParameters) error {
	if s == nil || s.Repo == nil {
		return errors.New("repo unavailable")
	}
	var lim compound.Limits
	if s.Projections != nil {
		lim = s.Projections.limits()
	}
	if err := params.Validate(lim); err != nil {
		return err
	}
	existing, err := s.Repo.GetStrategyByName(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStrategyNotFound
	}
	raw, _ := json.Marshal(params)
	return s.Repo.UpdateStrategyParams(ctx, name, raw)
}

// Run projects a saved strategy and links the persisted run to it.
func (s *StrategyService) Run(ctx context.Context, name string) (*models.ProjectionRun, compound.Projection, error) {
	if s == nil || s.Repo == nil || s.Projections == nil {
		return nil, compound.Projection{}, errors.New("service unavailable")
	}
	strat, err := s.Repo.GetStrategyByName(ctx, name)
	if err != nil {
		return nil, compound.Projection{}, err
	}
	if strat == nil {
		return nil, compound.Projection{}, ErrStrategyNotFound
	}
	if !strat.Enabled {
		return nil, compound.Projection{}, ErrStrategyDisabled
	}
	params, err := ParseStrategyParams(strat.Params)
	if err != nil {
		return nil, compound.Projection{}, err
	}
	id := strat.ID
	return s.Projections.Run(ctx, params, &id)
}

// ParseStrategyParams decodes a stored params document.
func ParseStrategyParams(raw []byte) (compound.StrategyParameters, error) {
	var params compound.StrategyParameters
	if len(raw) == 0 {
		return params, errors.New("empty strategy params")
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("decode strategy params: %w", err)
	}
	return params, nil
}
