package catalog

// Catalog file names inside the catalog directory
const (
	QuestsFile    = "quests.yaml"
	TutorialsFile = "tutorials.yaml"
)

// DefaultDir is used when CATALOG_DIR is not set
const DefaultDir = "configs"

// Error messages
const (
	ErrMsgReadFile         = "failed to read catalog file"
	ErrMsgParseYAML        = "failed to parse YAML"
	ErrMsgInvalidCatalog   = "invalid catalog"
	ErrMsgDuplicateID      = "duplicate id"
	ErrMsgEmptyID          = "empty id"
	ErrMsgNoTasks          = "quest has no tasks"
	ErrMsgBadReward        = "xp reward must be positive"
	ErrMsgUnknownLevel     = "unknown difficulty"
	ErrMsgBadAnswerIndex   = "correct answer out of range"
	ErrMsgDuplicateOrder   = "duplicate order"
	ErrMsgCatalogNotLoaded = "catalog not loaded"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Catalog loaded"
)
