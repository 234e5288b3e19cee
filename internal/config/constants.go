package config

const (
	// DefaultDatabasePath is the default path for the library catalog database
	DefaultDatabasePath = "./data/library.sqlite"

	// DefaultEnvFile is loaded into the environment on startup if present
	DefaultEnvFile = ".env"

	DefaultOpenLibraryBaseURL   = "https://openlibrary.org"
	DefaultOpenLibraryUserAgent = "BookAlchemy/1.0 (academic project)"
)
