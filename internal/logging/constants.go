package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldFiles         = "files"
	FieldRow           = "row"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldExisting      = "existing_category"
	FieldPriority      = "priority"
	FieldDirection     = "direction"
	FieldMonth         = "month"
	FieldPolicy        = "policy"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldDelimiter     = "delimiter"
	FieldFormat        = "format"
	FieldAddress       = "address"
	FieldStatus        = "status"
	FieldPath          = "path"
	FieldBytes         = "bytes"
	FieldComponent     = "component"
)
