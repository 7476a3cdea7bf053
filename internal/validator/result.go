// Package validator implements the PCE validation suite: independent
// checks over one environment snapshot plus an aggregator that reports
// only actionable findings. Checks return Result values; malformed
// input data (e.g. an unparsable CIDR) travels on the error channel
// instead and aborts the run.
package validator

type Code string

const (
	CodeSuccess Code = "SUCCESS"
	CodeWarning Code = "WARNING"
	CodeError   Code = "ERROR"
)

// Result is the outcome of one check. Equality is structural; a
// passing check carries no description or hint.
type Result struct {
	Code         Code   `json:"code"`
	Description  string `json:"description,omitempty"`
	SolutionHint string `json:"solution_hint,omitempty"`
}

func (r Result) Passed() bool {
	return r.Code == CodeSuccess
}

func success() Result {
	return Result{Code: CodeSuccess}
}
