package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldCount = "count"

	// Parser fields.
	FieldOptions   = "options"
	FieldBlocks    = "blocks"
	FieldOffset    = "offset"
	FieldEnd       = "end"
	FieldSourceLen = "source_len"

	// Incremental engine fields.
	FieldDocumentID   = "document_id"
	FieldChunkLen     = "chunk_len"
	FieldPendingLen   = "pending_len"
	FieldStableLen    = "stable_len"
	FieldStableBlocks = "stable_blocks"
	FieldBoundary     = "boundary"

	// Highlight fields.
	FieldTheme    = "theme"
	FieldLanguage = "language"
	FieldCacheCap = "cache_capacity"

	// CLI fields.
	FieldPath        = "path"
	FieldInput       = "input"
	FieldOutput      = "output"
	FieldVersion     = "version"
	FieldCommit      = "commit"
	FieldBuilt       = "built"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
