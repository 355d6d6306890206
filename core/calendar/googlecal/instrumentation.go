package googlecal

import "go.opentelemetry.io/otel"

const scopeName = "github.com/nvolchak/voxcal-core/core/calendar/googlecal"

var tracer = otel.Tracer(scopeName)
