// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	list, err := repo.ListBooks("hobbit", books.SortByAuthor)
package books

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookalchemy/internal/database/authors"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// SortKey selects the ordering of ListBooks.
type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByAuthor SortKey = "author"
)

// ParseSortKey normalizes a user supplied sort key. Anything other than
// "author" sorts by title.
func ParseSortKey(s string) SortKey {
	if SortKey(strings.TrimSpace(s)) == SortByAuthor {
		return SortByAuthor
	}
	return SortByTitle
}

// DeleteResult describes what a book deletion removed.
type DeleteResult struct {
	Book          entities.Book
	AuthorRemoved bool
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a book for an existing author. An ISBN that is already
// stored yields a DuplicateKeyError and nothing is written.
func (r *Repository) CreateBook(book *entities.Book) error {
	book.ID = 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		exists, err := authors.Exists(tx, book.AuthorID)
		if err != nil {
			return fmt.Errorf("check author %d: %w", book.AuthorID, err)
		}
		if !exists {
			return &entities.ValidationError{Field: "author_id", Message: "author does not exist"}
		}

		if err := tx.Omit("Author").Create(book).Error; err != nil {
			if isUniqueViolation(err) {
				return &entities.DuplicateKeyError{Field: "isbn", Value: book.ISBN}
			}
			return fmt.Errorf("create book: %w", err)
		}
		return nil
	})
	if err != nil {
		book.ID = 0
		return err
	}
	return nil
}

// GetBookByID retrieves a book with its author.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &entities.NotFoundError{Entity: "book", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindBookByISBN finds a book by its normalized ISBN.
func (r *Repository) FindBookByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks returns books whose title or author name contains query
// (case-insensitive), ordered by sort. An empty query returns every book.
func (r *Repository) ListBooks(query string, sort SortKey) ([]entities.Book, error) {
	tx := r.db.Model(&entities.Book{}).
		Joins("JOIN authors ON authors.id = books.author_id").
		Preload("Author")

	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		tx = tx.Where(
			`LOWER(books.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(authors.name) LIKE LOWER(?) ESCAPE '\'`,
			pattern, pattern,
		)
	}

	switch ParseSortKey(string(sort)) {
	case SortByAuthor:
		tx = tx.Order("authors.name ASC").Order("books.title ASC").Order("books.id ASC")
	default:
		tx = tx.Order("books.title ASC").Order("books.id ASC")
	}

	var books []entities.Book
	err := tx.Find(&books).Error
	return books, err
}

// DeleteBook removes a book and, within the same transaction, its author if
// that was the author's last book.
func (r *Repository) DeleteBook(id uint) (*DeleteResult, error) {
	result := &DeleteResult{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Author").First(&result.Book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &entities.NotFoundError{Entity: "book", ID: id}
			}
			return err
		}

		if err := tx.Delete(&entities.Book{}, id).Error; err != nil {
			return fmt.Errorf("delete book %d: %w", id, err)
		}

		removed, err := authors.RemoveOrphanAuthor(tx, result.Book.AuthorID)
		if err != nil {
			return err
		}
		result.AuthorRemoved = removed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CountBooks returns the total number of books in the catalog.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
