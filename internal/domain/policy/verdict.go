package policy

import (
	"time"
)

// Verdict is one evaluator's blocked/unblocked determination plus the
// supporting reason and proposed cancellation window bounds. The zero value
// means "rule does not apply" — unblocked, no reason, no dates.
type Verdict struct {
	Blocked     bool
	Reason      string
	WindowStart *time.Time
	WindowEnd   *time.Time
}

// Result is the aggregate eligibility decision merged from all evaluator
// verdicts. Cancelable is false exactly when Reasons is non-empty; the
// window start is the strictest (chronologically latest) of all proposals.
type Result struct {
	Cancelable  bool
	Reasons     []string
	WindowStart *time.Time
	WindowEnd   *time.Time
}
