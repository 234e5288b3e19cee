// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AuthorStore: Author persistence used by the catalog (internal/catalog/service.go)
//   - BookStore: Book persistence used by the catalog (internal/catalog/service.go)
//   - AuditReader: Read access to the mutation trail (internal/http/stores.go)
//
// ## HTTP Interfaces
//
//   - BookCatalog, AuthorCatalog: Catalog operations per controller (internal/http/stores.go)
//   - Pinger: Database health check (internal/http/stores.go)
//
// ## External Service Interfaces
//
//   - SummaryResolver: Best-effort book summary by ISBN (internal/metadata/resolver.go)
//
// # Adding a New Summary Source
//
//  1. Implement FetchSummary(ctx, isbn) string in internal/metadata/
//  2. Return "" on any failure; never return an error
//  3. Add a compile-time check to checks.go
//  4. Select it in entrypoint.NewSummaryResolver
package interfaces
