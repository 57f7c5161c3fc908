package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'slrgen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.grammar")
}
