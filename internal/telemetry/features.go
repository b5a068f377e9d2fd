package telemetry

import (
	"context"

	"github.com/goetz-markgraf/maach-et/internal/metrics"
)

// FeaturesVersion is bumped whenever metrics.Features changes shape.
const FeaturesVersion = "1"

// EmitTextFeatures records size features of text under the given source
// ("user", "tool", "assistant") without the text itself.
func EmitTextFeatures(ctx context.Context, source, text string) {
	if !Enabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	f := metrics.CountFeatures(text)
	Emit("local_features", map[string]any{
		"turn_id":          turnID,
		"features_version": FeaturesVersion,
		"source":           source,
		"features":         f.Map(),
	})
}
