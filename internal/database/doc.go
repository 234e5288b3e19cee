// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, DSN parameters, migrations
//	├── authors/         # Author CRUD and the orphan author rule
//	├── books/           # Book CRUD, search and sort
//	└── audit/           # Mutation trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./data/library.sqlite")
//
//	// Create domain-specific repositories
//	authorRepo := authors.NewRepository(db.DB)
//	bookRepo := books.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := bookRepo.GetBookByID(123)
//	result, err := bookRepo.DeleteBook(123) // removes the author too if it was their last book
//
// # Transactions
//
// Helpers that must join a caller's transaction take a *gorm.DB argument
// instead of using the repository's connection:
//
//	authors.Exists(tx, authorID)
//	authors.CountBooks(tx, authorID)
//	authors.RemoveOrphanAuthor(tx, authorID)
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to the AutoMigrate call in database.go
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
