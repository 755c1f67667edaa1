package diagnostics

// ConnectionStatus reports whether a database handle was resolved.
type ConnectionStatus string

const (
	StatusNotConnected ConnectionStatus = "Not Connected"
	StatusConnected    ConnectionStatus = "Connected"
)

// EnvFlag reports the presence of an environment variable.
type EnvFlag string

const (
	EnvSet    EnvFlag = "Set"
	EnvNotSet EnvFlag = "Not Set"
)

// Database status strings. Error branches append a truncated detail string.
const (
	databaseNotAvailable  = "Not Available"
	databaseAvailable     = "Available"
	databaseWorking       = "Connected & Working"
	databaseUninitialized = "Available but not initialized"
	databaseModuleMissing = "Database module not found (set DATABASE_URL to enable it)"
)

// Report is the structured diagnostic payload returned by GET /test. It is
// recomputed on every request and never persisted.
type Report struct {
	Backend          string           `json:"backend"`
	Database         string           `json:"database"`
	DatabaseURL      EnvFlag          `json:"database_url"`
	DatabaseName     EnvFlag          `json:"database_name"`
	ConnectionStatus ConnectionStatus `json:"connection_status"`
	Collections      []string         `json:"collections"`
}
