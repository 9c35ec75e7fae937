package output

import "auh/internal/build"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - pkg.result
// - run.finished
//
// JSON mode remains an aggregate of build.Result values.
type Event struct {
	Type    string `json:"type"`
	Package string `json:"package,omitempty"`
	*build.Result
	Packages int    `json:"packages,omitempty"`
	Pipeline string `json:"pipeline,omitempty"`
	Failed   int    `json:"failed,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
}

func eventFromResult(r build.Result) Event {
	return Event{Type: "pkg.result", Package: r.Package, Pipeline: string(r.Pipeline), Result: &r}
}
