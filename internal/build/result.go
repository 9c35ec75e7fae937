// Package build runs the acquire, build, install sequence for one package
// and classifies its outcome.
package build

// Pipeline selects which source a job acquires its build recipe from.
type Pipeline string

const (
	// PipelineAUR queries the AUR catalog and clones the package's own
	// recipe repository.
	PipelineAUR Pipeline = "aur"
	// PipelineMirror skips the catalog and shallow-clones the package's
	// branch of the GitHub mirror.
	PipelineMirror Pipeline = "mirror"
)

// Kind classifies a job's terminal outcome.
type Kind string

const (
	KindSuccess          Kind = "SUCCESS"
	KindAlreadyInstalled Kind = "ALREADY_INSTALLED"
	KindInvalidName      Kind = "INVALID_NAME"
	KindNotFoundUpstream Kind = "NOT_FOUND"
	KindCloneFailure     Kind = "CLONE_FAILED"
	KindBuildFailure     Kind = "BUILD_FAILED"
	KindDispatchFailure  Kind = "DISPATCH_FAILED"
)

// Failure reports whether the kind counts against the batch. An
// already-installed package is a short-circuited success, not an error.
func (k Kind) Failure() bool {
	switch k {
	case KindSuccess, KindAlreadyInstalled:
		return false
	}
	return true
}

// Result is the single classified outcome attached to one package request.
type Result struct {
	Package  string   `json:"package"`
	Pipeline Pipeline `json:"pipeline,omitempty"`
	Kind     Kind     `json:"kind"`
	Message  string   `json:"message,omitempty"`
}

// RunSummary aggregates the results of one batch. It is owned by the caller
// that drains the scheduler and is final only once every request has a
// recorded result.
type RunSummary struct {
	Submitted int
	Counts    map[Kind]int
	Failed    int
}

func NewRunSummary(submitted int) *RunSummary {
	return &RunSummary{
		Submitted: submitted,
		Counts:    make(map[Kind]int),
	}
}

func (s *RunSummary) Record(r Result) {
	s.Counts[r.Kind]++
	if r.Kind.Failure() {
		s.Failed++
	}
}

// Recorded returns how many results have been folded in so far; when the
// batch is complete it equals Submitted.
func (s *RunSummary) Recorded() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

func (s *RunSummary) HasFailures() bool {
	return s.Failed > 0
}
