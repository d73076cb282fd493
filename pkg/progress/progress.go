// Package progress defines the progress snapshot reported by long-running
// management service operations.
package progress

import "fmt"

// Progress is an immutable snapshot of a sequence of installation steps.
type Progress struct {
	// CurrentStep is the 1-based index of the step in progress.
	CurrentStep int `json:"current_step" yaml:"current_step"`

	// MaxSteps is the total number of steps in the sequence.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`

	// CurrentTitle describes the step in progress.
	CurrentTitle string `json:"current_title" yaml:"current_title"`

	// Finished reports whether the whole sequence has completed.
	Finished bool `json:"finished" yaml:"finished"`
}

// String renders the snapshot as "title (step/max)".
func (p Progress) String() string {
	if p.Finished {
		return fmt.Sprintf("%s (done)", p.CurrentTitle)
	}
	return fmt.Sprintf("%s (%d/%d)", p.CurrentTitle, p.CurrentStep, p.MaxSteps)
}
