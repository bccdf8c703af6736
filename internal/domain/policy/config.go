package policy

import (
	"strconv"
	"strings"

	"github.com/samsarastore/samsara/internal/types"
)

// Meta keys for the cancellation policy group. The same six-key group is
// read at every resolution level (subscription, variation/product, parent
// product); a level is either taken whole or skipped whole.
const (
	MetaKeyMinimumPeriod     = "minimum_period"
	MetaKeyCoolingOffPeriod  = "cooling_off_period"
	MetaKeyRollingCycle      = "rolling_cycle"
	MetaKeyWindowAction      = "cancellation_window_action"
	MetaKeyWindowStartOffset = "cancellation_window_start"
	MetaKeyWindowEndOffset   = "cancellation_window_end"
	MetaKeyWindowPeriodUnit  = "cancellation_window_unit"
)

// MetaKeys is the full policy group in resolution order
var MetaKeys = []string{
	MetaKeyMinimumPeriod,
	MetaKeyCoolingOffPeriod,
	MetaKeyRollingCycle,
	MetaKeyWindowAction,
	MetaKeyWindowStartOffset,
	MetaKeyWindowEndOffset,
	MetaKeyWindowPeriodUnit,
}

// Config is the effective cancellation ruleset for one subscription,
// resolved once per request. The zero value means "no restrictions".
type Config struct {
	// MinimumPeriod is the number of payments that must complete before
	// cancellation is allowed; 0 means no minimum
	MinimumPeriod int `json:"minimum_period"`

	// CoolingOffPeriodDays blocks cancellation for this many days after the
	// subscription start; 0 means no cooling-off period
	CoolingOffPeriodDays int `json:"cooling_off_period_days"`

	// RollingCycle is the number of payments per commitment cycle; when > 0
	// the cancellation window re-locks each time a cycle completes
	RollingCycle int `json:"rolling_cycle"`

	// WindowAction is how the time window is interpreted (enable/disable)
	WindowAction types.WindowAction `json:"window_action"`

	// WindowStartOffset and WindowEndOffset are offsets from the last
	// payment date, in WindowPeriodUnit units, defining the window bounds.
	// A nil end leaves the window open-ended.
	WindowStartOffset *int `json:"window_start_offset"`
	WindowEndOffset   *int `json:"window_end_offset"`

	// WindowPeriodUnit is the unit of the window offsets
	WindowPeriodUnit types.WindowPeriodUnit `json:"window_period_unit"`
}

// IsEmpty reports whether this level carries no policy worth keeping. The
// group is taken when either a minimum period or a window start is present,
// mirroring the store of record's fallback rule.
func (c *Config) IsEmpty() bool {
	return c.MinimumPeriod == 0 && c.WindowStartOffset == nil
}

// HasWindowRule reports whether the time-window rule applies at all
func (c *Config) HasWindowRule() bool {
	return c.WindowAction != types.WindowActionUnset && c.WindowStartOffset != nil
}

// FromMeta parses a raw metadata mapping into a typed Config. The store of
// record keeps these values as loosely-typed strings; missing keys, empty
// strings, "0" and unparseable values are all treated as unset, matching
// the source system's emptiness semantics. Parsing never fails: anything
// unusable degrades to "no restriction".
func FromMeta(meta map[string]string) *Config {
	cfg := &Config{
		MinimumPeriod:        parseCount(meta[MetaKeyMinimumPeriod]),
		CoolingOffPeriodDays: parseCount(meta[MetaKeyCoolingOffPeriod]),
		RollingCycle:         parseCount(meta[MetaKeyRollingCycle]),
		WindowStartOffset:    parseOptionalCount(meta[MetaKeyWindowStartOffset]),
		WindowEndOffset:      parseOptionalCount(meta[MetaKeyWindowEndOffset]),
		WindowPeriodUnit:     parseWindowUnit(meta[MetaKeyWindowPeriodUnit]),
	}

	switch types.WindowAction(strings.TrimSpace(meta[MetaKeyWindowAction])) {
	case types.WindowActionEnable:
		cfg.WindowAction = types.WindowActionEnable
	case types.WindowActionDisable:
		cfg.WindowAction = types.WindowActionDisable
	default:
		cfg.WindowAction = types.WindowActionUnset
	}

	return cfg
}

func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func parseOptionalCount(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func parseWindowUnit(raw string) types.WindowPeriodUnit {
	unit := types.WindowPeriodUnit(strings.TrimSpace(raw))
	if err := unit.Validate(); err != nil {
		return types.WINDOW_PERIOD_UNIT_DAY
	}
	return unit
}
