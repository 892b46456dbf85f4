package orchestrator

import "auracx/internal/intent"

// DefaultConfidenceThreshold separates the two execution modes.
const DefaultConfidenceThreshold = 0.7

// Route selects the execution path for a judgment. Confidence below the
// threshold routes to the retrieval path; everything else runs the
// deterministic tooling path. This is the system's core behavioral fork:
// it is a pure function of confidence and threshold, evaluated exactly
// once per request before any repository lookup.
func Route(judgment intent.Judgment, threshold float64) Mode {
	if judgment.Confidence < threshold {
		return ModeRAG
	}
	return ModeTooling
}
