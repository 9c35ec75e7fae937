package engine

import "auh/internal/build"

// Resolve maps the batch-wide probe result and the explicit mirror flag to a
// pipeline choice. Pure: an explicit mirror request always wins; otherwise
// the mirror is used exactly when the primary probe reported down.
func Resolve(probeUp, explicitMirror bool) build.Pipeline {
	if explicitMirror || !probeUp {
		return build.PipelineMirror
	}
	return build.PipelineAUR
}
