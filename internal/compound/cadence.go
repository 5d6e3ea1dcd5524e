package compound

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cadence selects which time granularity a recurring event (contribution,
// withdrawal, tax, risk re-sizing) fires at. The zero value means "never".
type Cadence string

const (
	CadenceNone   Cadence = ""
	CadencePeriod Cadence = "period"
	CadenceCycle  Cadence = "cycle"
)

func ParseCadence(raw string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return CadenceNone, nil
	case "period":
		return CadencePeriod, nil
	case "cycle":
		return CadenceCycle, nil
	default:
		return CadenceNone, fmt.Errorf("invalid cadence: %q", raw)
	}
}

func (c Cadence) String() string {
	if c == CadenceNone {
		return "none"
	}
	return string(c)
}

// AppliesAt reports whether a cadence-gated cash flow fires on this period.
// Cycle-cadence flows fire on the last period of the cycle.
func (c Cadence) AppliesAt(period, periodsPerCycle int) bool {
	switch c {
	case CadencePeriod:
		return true
	case CadenceCycle:
		return period == periodsPerCycle
	default:
		return false
	}
}

// RefreshAt reports whether risk sizing is recomputed on this period.
func (c Cadence) RefreshAt(period int) bool {
	switch c {
	case CadencePeriod:
		return true
	case CadenceCycle:
		return period == 1
	default:
		return false
	}
}

func (c Cadence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Cadence) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseCadence(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
