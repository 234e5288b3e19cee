// Package authors provides database operations for author management.
//
// Authors own their books: deleting an author removes every book that
// references it, and an author left without books after a book deletion is
// removed by RemoveOrphanAuthor.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetAuthorByID(7)
package authors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookalchemy/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthor inserts a new author and fills in its ID.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	author.ID = 0
	if err := r.db.Omit("Books").Create(author).Error; err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

// GetAuthorByID retrieves an author with its books ordered by title.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("title ASC, id ASC")
	}).First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &entities.NotFoundError{Entity: "author", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Exists reports whether an author with the given ID exists.
func Exists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := tx.Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAuthors returns all authors ordered by name.
func (r *Repository) ListAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC, id ASC").Find(&authors).Error
	return authors, err
}

// DeleteAuthor removes an author together with all of its books in a single
// transaction and returns the deleted author with the books it owned.
func (r *Repository) DeleteAuthor(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Books").First(&author, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &entities.NotFoundError{Entity: "author", ID: id}
			}
			return err
		}

		if err := tx.Where("author_id = ?", id).Delete(&entities.Book{}).Error; err != nil {
			return fmt.Errorf("delete books of author %d: %w", id, err)
		}

		return tx.Delete(&entities.Author{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// CountBooks returns how many books the author owns as seen by tx.
func CountBooks(tx *gorm.DB, authorID uint) (int64, error) {
	var count int64
	err := tx.Model(&entities.Book{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// RemoveOrphanAuthor deletes the author if it no longer owns any book.
// It must run on the same transaction that removed the book so the count
// reflects the post-delete state.
func RemoveOrphanAuthor(tx *gorm.DB, authorID uint) (bool, error) {
	remaining, err := CountBooks(tx, authorID)
	if err != nil {
		return false, fmt.Errorf("count books of author %d: %w", authorID, err)
	}
	if remaining > 0 {
		return false, nil
	}

	result := tx.Delete(&entities.Author{}, authorID)
	if result.Error != nil {
		return false, fmt.Errorf("delete orphan author %d: %w", authorID, result.Error)
	}
	return result.RowsAffected > 0, nil
}
