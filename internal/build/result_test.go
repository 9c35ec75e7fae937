package build

import "testing"

func TestKindFailure(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindSuccess, false},
		{KindAlreadyInstalled, false},
		{KindInvalidName, true},
		{KindNotFoundUpstream, true},
		{KindCloneFailure, true},
		{KindBuildFailure, true},
		{KindDispatchFailure, true},
	}
	for _, tt := range tests {
		if got := tt.kind.Failure(); got != tt.want {
			t.Errorf("%s.Failure() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestRunSummaryRecord(t *testing.T) {
	s := NewRunSummary(4)
	s.Record(Result{Package: "a", Kind: KindSuccess})
	s.Record(Result{Package: "b", Kind: KindAlreadyInstalled})
	s.Record(Result{Package: "c", Kind: KindBuildFailure})
	s.Record(Result{Package: "d", Kind: KindInvalidName})

	if s.Recorded() != s.Submitted {
		t.Errorf("Recorded = %d, want Submitted = %d", s.Recorded(), s.Submitted)
	}
	if s.Failed != 2 {
		t.Errorf("Failed = %d, want 2", s.Failed)
	}
	if !s.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if s.Counts[KindSuccess] != 1 || s.Counts[KindBuildFailure] != 1 {
		t.Errorf("Counts = %v", s.Counts)
	}
}
