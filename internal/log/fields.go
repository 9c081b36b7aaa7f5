package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldGoalID      = "goal_id"
	FieldMonths      = "months"
	FieldSimulations = "simulations"
	FieldWorkers     = "workers"
	FieldSeed        = "seed"
	FieldAmount      = "amount"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentEngine  = "engine"
	ComponentInsight = "insight"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpSimulate   = "simulate"
	OpContribute = "contribute"
	OpPlan       = "plan"
	OpExplain    = "explain"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)

// Fields is a builder for structured log attributes.
type Fields map[string]any

func NewFields() Fields {
	return make(Fields)
}

func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

func (f Fields) WithGoal(id string) Fields {
	if id != "" {
		f[FieldGoalID] = id
	}
	return f
}

// WithError adds error field
func (f Fields) WithError(err error) Fields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f Fields) WithHTTP(method, path string, status int, durationMs int64) Fields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldStatusCode] = status
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts Fields to key/value pairs for slog.
func (f Fields) ToSlice() []any {
	out := make([]any, 0, len(f)*2)
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
