package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"stratsim/internal/compound"
	"stratsim/internal/service"
)

// StreamHandler serves projections over a websocket: the client sends one
// parameters document, the server streams every period record followed by a
// summary frame, then closes.
type StreamHandler struct {
	Service *service.ProjectionService
	Logger  *zap.Logger
}

func (h *StreamHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/projections/stream", h.stream)
}

type streamFrame struct {
	Type    string                 `json:"type"`
	Record  *compound.PeriodRecord `json:"record,omitempty"`
	Summary *streamSummary         `json:"summary,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

type streamSummary struct {
	Stats            compound.DerivedStats `json:"stats"`
	Outcome          compound.Outcome      `json:"outcome"`
	FinalBalance     string                `json:"final_balance"`
	PeriodsSimulated int                   `json:"periods_simulated"`
}

func (h *StreamHandler) stream(c *gin.Context) {
	if h.Service == nil {
		c.AbortWithStatus(500)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("projection stream accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	ctx := c.Request.Context()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	_, data, err := conn.Read(readCtx)
	cancel()
	if err != nil {
		if h.Logger != nil && !errors.Is(err, context.Canceled) {
			h.Logger.Warn("projection stream read failed", zap.Error(err))
		}
		return
	}

	var params compound.StrategyParameters
	if err := json.Unmarshal(data, &params); err != nil {
		_ = writeFrame(ctx, conn, streamFrame{Type: "error", Error: "invalid parameters: " + err.Error()})
		_ = conn.Close(websocket.StatusUnsupportedData, "invalid parameters")
		return
	}
	proj, err := h.Service.Preview(ctx, params)
	if err != nil {
		_ = writeFrame(ctx, conn, streamFrame{Type: "error", Error: err.Error()})
		_ = conn.Close(websocket.StatusNormalClosure, "rejected")
		return
	}

	for i := range proj.Records {
		if err := writeFrame(ctx, conn, streamFrame{Type: "record", Record: &proj.Records[i]}); err != nil {
			return
		}
	}
	_ = writeFrame(ctx, conn, streamFrame{Type: "summary", Summary: &streamSummary{
		Stats:            proj.Stats,
		Outcome:          proj.Outcome,
		FinalBalance:     proj.FinalBalance.StringFixed(0),
		PeriodsSimulated: proj.PeriodsSimulated,
	}})
	_ = conn.Close(websocket.StatusNormalClosure, "done")
}

func writeFrame(ctx context.Context, conn *websocket.Conn, frame streamFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, payload)
}
