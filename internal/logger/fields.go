package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldSource is the artwork source identifier
	FieldSource = "source"

	// FieldArtworkID is the museum artwork ID being acted on
	FieldArtworkID = "artwork_id"

	// FieldStrategy is the recommendation filter strategy being fetched
	FieldStrategy = "strategy"

	// FieldPage is the page number of a paginated fetch
	FieldPage = "page"
)

// Metric fields, attached per entry for aggregation.
const (
	FieldDurationMs = "duration_ms"
	FieldCount      = "count"
	FieldSize       = "size"
	FieldStatus     = "status"
)
