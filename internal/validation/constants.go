package validation

const (
	ErrMsgReadDataFmt     = "failed to read data file %s: %w"
	ErrMsgFileInvalidFmt  = "%s: %w"
	ErrMsgDecodeFmt       = "failed to decode %s: %w"
	ErrMsgLoadSchemaFmt   = "failed to load schema %s: %w"
	ErrMsgParseDataFmt    = "failed to parse JSON data: %w"
	ErrMsgValidationFmt   = "validation error: %w"
	ErrMsgSchemaFailedFmt = "schema validation failed:\n%s"
)
