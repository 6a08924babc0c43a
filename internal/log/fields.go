package log

// Field names shared by every call site. A concept logged under two
// different keys cannot be filtered, so the keys live here.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldTxID       = "transaction_id"
	FieldAction     = "action"
	FieldCount      = "count"
)

// Component names, one per binary.
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
)
