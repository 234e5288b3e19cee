// Package catalog implements the library's use cases on top of the author
// and book repositories: input validation, summary enrichment for new books,
// and the audit trail for every mutation.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookalchemy/internal/audit"
	"github.com/mrlokans/bookalchemy/internal/database/authors"
	"github.com/mrlokans/bookalchemy/internal/database/books"
	"github.com/mrlokans/bookalchemy/internal/entities"
	"github.com/mrlokans/bookalchemy/internal/metadata"
)

// AuthorStore defines the author persistence operations the catalog needs.
type AuthorStore interface {
	CreateAuthor(author *entities.Author) error
	GetAuthorByID(id uint) (*entities.Author, error)
	ListAuthors() ([]entities.Author, error)
	DeleteAuthor(id uint) (*entities.Author, error)
}

// BookStore defines the book persistence operations the catalog needs.
type BookStore interface {
	CreateBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	FindBookByISBN(isbn string) (*entities.Book, error)
	ListBooks(query string, sort books.SortKey) ([]entities.Book, error)
	DeleteBook(id uint) (*books.DeleteResult, error)
}

var (
	_ AuthorStore = (*authors.Repository)(nil)
	_ BookStore   = (*books.Repository)(nil)
)

// Service is the catalog core used by the HTTP layer and the CLI.
type Service struct {
	authors  AuthorStore
	books    BookStore
	resolver metadata.SummaryResolver
	auditor  *audit.Service
	now      func() time.Time
}

// NewService creates a catalog service. A nil resolver disables summary
// lookups.
func NewService(authorStore AuthorStore, bookStore BookStore, resolver metadata.SummaryResolver) *Service {
	if resolver == nil {
		resolver = metadata.NoopResolver{}
	}
	return &Service{
		authors:  authorStore,
		books:    bookStore,
		resolver: resolver,
		now:      time.Now,
	}
}

// NewServiceFromDB wires gorm-backed repositories into a Service.
func NewServiceFromDB(db *gorm.DB, resolver metadata.SummaryResolver) *Service {
	return NewService(authors.NewRepository(db), books.NewRepository(db), resolver)
}

// SetAuditService sets the audit trail (optional).
func (s *Service) SetAuditService(auditor *audit.Service) {
	s.auditor = auditor
}

// SetClock overrides the clock used for the publication year upper bound.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CurrentYear is the latest publication year accepted for a new book.
func (s *Service) CurrentYear() int {
	return s.now().Year()
}

// CreateAuthor validates the input and stores a new author.
func (s *Service) CreateAuthor(ctx context.Context, in AuthorInput) (*entities.Author, error) {
	if err := in.Validate(); err != nil {
		return nil, toValidationError(err)
	}
	author, err := in.toAuthor()
	if err != nil {
		return nil, err
	}

	if err := s.authors.CreateAuthor(author); err != nil {
		return nil, err
	}

	log.Printf("[catalog] Created author %d (%s)", author.ID, author.Name)
	if s.auditor != nil {
		s.auditor.LogCreate("author", author.ID, author.Name, nil)
	}
	return author, nil
}

// CreateBook validates the input, resolves a summary for the ISBN and stores
// the book. Summary lookup failures never fail the operation.
func (s *Service) CreateBook(ctx context.Context, in BookInput) (*entities.Book, error) {
	if err := in.Validate(s.CurrentYear()); err != nil {
		return nil, toValidationError(err)
	}
	book, err := in.toBook()
	if err != nil {
		return nil, err
	}

	// Cheap checks first so a doomed insert doesn't cost a network round trip.
	if _, err := s.authors.GetAuthorByID(book.AuthorID); err != nil {
		if entities.IsNotFound(err) {
			return nil, &entities.ValidationError{Field: "author_id", Message: "author does not exist"}
		}
		return nil, err
	}
	if existing, err := s.books.FindBookByISBN(book.ISBN); err == nil && existing != nil {
		s.logRejectedBook(book, &entities.DuplicateKeyError{Field: "isbn", Value: book.ISBN})
		return nil, &entities.DuplicateKeyError{Field: "isbn", Value: book.ISBN}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check isbn: %w", err)
	}

	if summary := s.resolver.FetchSummary(ctx, book.ISBN); summary != "" {
		book.Summary = &summary
	}

	if err := s.books.CreateBook(book); err != nil {
		if entities.IsDuplicateKey(err) {
			s.logRejectedBook(book, err)
		}
		return nil, err
	}

	created, err := s.books.GetBookByID(book.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("[catalog] Created book %d (%s), summary found: %t", created.ID, created.Title, created.HasSummary())
	if s.auditor != nil {
		s.auditor.LogCreate("book", created.ID, created.Title, map[string]any{
			"isbn":        created.ISBN,
			"author_id":   created.AuthorID,
			"has_summary": created.HasSummary(),
		})
	}
	return created, nil
}

func (s *Service) logRejectedBook(book *entities.Book, err error) {
	log.Printf("[catalog] Rejected book %q: %v", book.Title, err)
	if s.auditor != nil {
		s.auditor.LogFailure(entities.AuditEventCreate, "book", "Rejected book: "+book.Title, err)
	}
}

// GetBook returns a single book with its author.
func (s *Service) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	return s.books.GetBookByID(id)
}

// GetAuthor returns a single author with its books.
func (s *Service) GetAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	return s.authors.GetAuthorByID(id)
}

// ListAuthors returns all authors ordered by name.
func (s *Service) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	return s.authors.ListAuthors()
}

// ListBooks searches and sorts the catalog. Unknown sort keys fall back to
// title; the effective key is returned alongside the books.
func (s *Service) ListBooks(ctx context.Context, query, sort string) ([]entities.Book, books.SortKey, error) {
	key := books.ParseSortKey(sort)
	list, err := s.books.ListBooks(query, key)
	if err != nil {
		return nil, key, err
	}
	return list, key, nil
}

// DeleteBook removes a book and its author when that was the author's last
// book.
func (s *Service) DeleteBook(ctx context.Context, id uint) (*books.DeleteResult, error) {
	result, err := s.books.DeleteBook(id)
	if err != nil {
		return nil, err
	}

	log.Printf("[catalog] Deleted book %d (%s), orphan author removed: %t", id, result.Book.Title, result.AuthorRemoved)
	if s.auditor != nil {
		s.auditor.LogDelete("book", id, result.Book.Title, map[string]any{
			"author_id":      result.Book.AuthorID,
			"author_removed": result.AuthorRemoved,
		})
		if result.AuthorRemoved && result.Book.Author != nil {
			s.auditor.LogDelete("author", result.Book.AuthorID, result.Book.Author.Name, map[string]any{
				"reason": "orphaned",
			})
		}
	}
	return result, nil
}

// DeleteAuthor removes an author and every book it owns.
func (s *Service) DeleteAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	author, err := s.authors.DeleteAuthor(id)
	if err != nil {
		return nil, err
	}

	log.Printf("[catalog] Deleted author %d (%s) with %d books", id, author.Name, len(author.Books))
	if s.auditor != nil {
		s.auditor.LogDelete("author", id, author.Name, map[string]any{
			"books_removed": len(author.Books),
		})
	}
	return author, nil
}
