package engine

import (
	"testing"

	"auh/internal/build"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		probeUp        bool
		explicitMirror bool
		want           build.Pipeline
	}{
		{true, false, build.PipelineAUR},
		{false, false, build.PipelineMirror},
		{true, true, build.PipelineMirror},
		{false, true, build.PipelineMirror},
	}

	for _, tt := range tests {
		if got := Resolve(tt.probeUp, tt.explicitMirror); got != tt.want {
			t.Errorf("Resolve(probeUp=%v, explicitMirror=%v) = %v, want %v",
				tt.probeUp, tt.explicitMirror, got, tt.want)
		}
	}
}
