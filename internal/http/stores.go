package http

import (
	"context"

	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/database/books"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// Each controller depends on the narrow slice of the catalog it uses.
// *catalog.Service satisfies all of them.

// BookCatalog provides book operations.
type BookCatalog interface {
	ListBooks(ctx context.Context, query, sort string) ([]entities.Book, books.SortKey, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, in catalog.BookInput) (*entities.Book, error)
	DeleteBook(ctx context.Context, id uint) (*books.DeleteResult, error)
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	CurrentYear() int
}

// AuthorCatalog provides author operations.
type AuthorCatalog interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	CreateAuthor(ctx context.Context, in catalog.AuthorInput) (*entities.Author, error)
	DeleteAuthor(ctx context.Context, id uint) (*entities.Author, error)
}

// AuditReader provides read access to the mutation trail.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForEntity(entityType string, entityID uint) ([]entities.AuditEvent, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping() error
}
