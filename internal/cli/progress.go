// Package cli holds presentation helpers for the corpusminer binary: phase
// timers and human-readable progress/result lines. None of this is core
// mining logic, so it lives here instead of in pkg/.
package cli

import (
	"time"

	"github.com/charmbracelet/log"
)

// Phase wraps a single named stage of loading or mining, printing a
// "[TIMER] <label>: <duration>" line on Stop.
type Phase struct {
	label string
	start time.Time
}

// StartPhase begins timing a named phase and logs that it started.
func StartPhase(label string) *Phase {
	log.Infof("[LOG] %s...", label)
	return &Phase{label: label, start: time.Now()}
}

// Stop logs the elapsed wall-clock time for the phase.
func (p *Phase) Stop() {
	log.Infof("[TIMER] %s: %s", p.label, time.Since(p.start))
}

// FormatWithCommas renders n with thousands separators, e.g. 1234567 ->
// "1,234,567", for human-readable progress counts.
func FormatWithCommas(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := []byte{}
	for n > 0 || len(digits) == 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	var out []byte
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
		if i%3 == 0 && i != 0 {
			out = append(out, ',')
		}
	}
	if neg {
		out = append([]byte{'-'}, out...)
	}
	return string(out)
}

// ReportProgress prints an expansion-loop progress line, meant to be
// shown every N candidates rather than on every iteration.
func ReportProgress(checked, total, mined int) {
	log.Infof("[LOG] Progress: %s/%s candidates checked. Mined: %s",
		FormatWithCommas(checked), FormatWithCommas(total), FormatWithCommas(mined))
}

// ReportSummary prints the final result count and output path once mining
// and writing have both completed.
func ReportSummary(patternCount int, outputPath string, elapsed time.Duration) {
	log.Infof("[LOG] Mining completed in %s. Found %s patterns.", elapsed, FormatWithCommas(patternCount))
	log.Infof("[LOG] Results written to %s", outputPath)
}
