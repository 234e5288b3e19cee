package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Books   BookCatalog
	Authors AuthorCatalog

	// Optional; the audit endpoints are not registered when nil
	Audit AuditReader

	// Optional; health reports "not configured" when nil
	Database Pinger

	// Application info
	Version string
}
