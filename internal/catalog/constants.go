package catalog

const (
	ErrMsgLoadItemsFmt      = "failed to load item catalog: %w"
	ErrMsgLoadPresetsFmt    = "failed to load presets: %w"
	ErrMsgDuplicateTemplate = "duplicate template id"
	ErrMsgDuplicatePreset   = "duplicate preset id"
	ErrMsgUnknownParent     = "unknown parent template"
	ErrMsgPresetNoItems     = "preset has no items"
	ErrMsgPresetUnknownTpl  = "preset references unknown template"
	ErrMsgInvalidEntryFmt   = "%w: %s (%s)"

	LogMsgCatalogLoaded = "Item catalog loaded"
)
