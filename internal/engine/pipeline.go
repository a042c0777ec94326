// internal/engine/pipeline.go
package engine

import "fmt"

// Stage is a step of the evaluation pipeline.
type Stage int

const (
	StageUninitialized Stage = iota
	StageScored
	StageAggregated
	StageAssessed
	StageRecommended
	StageAdapted
)

func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageScored:
		return "scored"
	case StageAggregated:
		return "aggregated"
	case StageAssessed:
		return "assessed"
	case StageRecommended:
		return "recommended"
	case StageAdapted:
		return "adapted"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// pipeline enforces that every evaluation runs all stages in order. Skipping or repeating a
// stage is a programming error and panics.
type pipeline struct {
	stage Stage
}

func (p *pipeline) advance(next Stage) {
	if next != p.stage+1 {
		panic(fmt.Sprintf("engine: invalid pipeline transition %s -> %s", p.stage, next))
	}
	p.stage = next
}

func (p *pipeline) complete() bool {
	return p.stage == StageAdapted
}
