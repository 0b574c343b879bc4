package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldKey       = "key"
	FieldID        = "id"
	FieldRevision  = "revision"
	FieldPeriod    = "period"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldBackend   = "backend"
	FieldCount     = "count"
	FieldDuration  = "duration_ms"
	FieldAttempt   = "attempt"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentStore     = "store"
	ComponentKV        = "kv"
	ComponentBackend   = "backend"
	ComponentService   = "service"
	ComponentAnalytics = "analytics"
	ComponentCache     = "cache"
	ComponentAMQP      = "amqp"
	ComponentCLI       = "cli"
)

// Operations defines standard operation names
const (
	OpCreate      = "create"
	OpRead        = "read"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpList        = "list"
	OpLoad        = "load"
	OpSaveBudgets = "save_budgets"
	OpFlush       = "flush"
	OpPublish     = "publish"
	OpConsume     = "consume"
	OpRender      = "render"
	OpStartup     = "startup"
	OpShutdown    = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds the fields identifying a transaction mutation
func (f LogFields) WithTransaction(id, category, amount string) LogFields {
	f[FieldID] = id
	f[FieldCategory] = category
	f[FieldAmount] = amount
	return f
}

// WithRevision adds the store revision a record refers to
func (f LogFields) WithRevision(rev uint64) LogFields {
	f[FieldRevision] = rev
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
