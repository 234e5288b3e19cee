package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookalchemy/internal/audit"
	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/database/authors"
	"github.com/mrlokans/bookalchemy/internal/database/books"
	"github.com/mrlokans/bookalchemy/internal/http"
	"github.com/mrlokans/bookalchemy/internal/metadata"
	"github.com/mrlokans/bookalchemy/internal/scheduler"
	"github.com/mrlokans/bookalchemy/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ catalog.AuthorStore = (*authors.Repository)(nil)
var _ catalog.BookStore = (*books.Repository)(nil)

// =============================================================================
// HTTP Dependencies
// =============================================================================

var _ http.BookCatalog = (*catalog.Service)(nil)
var _ http.AuthorCatalog = (*catalog.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ metadata.SummaryResolver = (*metadata.OpenLibraryClient)(nil)
var _ metadata.SummaryResolver = metadata.NoopResolver{}

// =============================================================================
// Background Jobs
// =============================================================================

var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
