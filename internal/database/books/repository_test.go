package books

import (
	"fmt"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/database/authors"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "books.db"), "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db.DB), db.DB
}

func createAuthor(t *testing.T, db *gorm.DB, name string) *entities.Author {
	t.Helper()
	author := &entities.Author{Name: name, BirthDate: time.Date(1892, 1, 3, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, authors.NewRepository(db).CreateAuthor(author))
	return author
}

func createBook(t *testing.T, repo *Repository, authorID uint, title, isbn string) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, ISBN: isbn, PublicationYear: 1937, AuthorID: authorID}
	require.NoError(t, repo.CreateBook(book))
	return book
}

func titles(list []entities.Book) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Title
	}
	return out
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByTitle, ParseSortKey("title"))
	assert.Equal(t, SortByAuthor, ParseSortKey("author"))
	assert.Equal(t, SortByAuthor, ParseSortKey(" author "))
	assert.Equal(t, SortByTitle, ParseSortKey("price"))
	assert.Equal(t, SortByTitle, ParseSortKey(""))
}

func TestRepository_CreateBook(t *testing.T) {
	repo, db := setupTestDB(t)
	author := createAuthor(t, db, "J.R.R. Tolkien")

	summary := "A hobbit goes on an adventure."
	book := &entities.Book{
		Title:           "The Hobbit",
		ISBN:            "9780261103344",
		PublicationYear: 1937,
		AuthorID:        author.ID,
		Summary:         &summary,
	}
	require.NoError(t, repo.CreateBook(book))
	assert.NotZero(t, book.ID)

	saved, err := repo.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", saved.Title)
	assert.Equal(t, "9780261103344", saved.ISBN)
	assert.Equal(t, 1937, saved.PublicationYear)
	assert.Equal(t, author.ID, saved.AuthorID)
	require.NotNil(t, saved.Author)
	assert.Equal(t, "J.R.R. Tolkien", saved.Author.Name)
	require.NotNil(t, saved.Summary)
	assert.Equal(t, summary, *saved.Summary)
}

func TestRepository_CreateBook_DuplicateISBN(t *testing.T) {
	repo, db := setupTestDB(t)
	author := createAuthor(t, db, "J.R.R. Tolkien")
	createBook(t, repo, author.ID, "The Hobbit", "9780261103344")

	before, err := repo.CountBooks()
	require.NoError(t, err)

	dup := &entities.Book{Title: "Another", ISBN: "9780261103344", PublicationYear: 2000, AuthorID: author.ID}
	err = repo.CreateBook(dup)

	require.Error(t, err)
	var dupErr *entities.DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "isbn", dupErr.Field)
	assert.Zero(t, dup.ID)

	after, err := repo.CountBooks()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRepository_CreateBook_UnknownAuthor(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.CreateBook(&entities.Book{Title: "Orphan", ISBN: "123", PublicationYear: 2000, AuthorID: 999})

	assert.True(t, entities.IsValidation(err))
	count, err := repo.CountBooks()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetBookByID(42)
	assert.True(t, entities.IsNotFound(err))
}

func TestRepository_ListBooks_SortByTitle(t *testing.T) {
	repo, db := setupTestDB(t)
	tolkien := createAuthor(t, db, "Tolkien")
	austen := createAuthor(t, db, "Austen")
	createBook(t, repo, tolkien.ID, "The Silmarillion", "1")
	createBook(t, repo, austen.ID, "Emma", "2")
	createBook(t, repo, tolkien.ID, "The Hobbit", "3")

	list, err := repo.ListBooks("", SortByTitle)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emma", "The Hobbit", "The Silmarillion"}, titles(list))
	for _, b := range list {
		require.NotNil(t, b.Author)
	}
}

func TestRepository_ListBooks_SortByAuthor(t *testing.T) {
	repo, db := setupTestDB(t)
	tolkien := createAuthor(t, db, "Tolkien")
	austen := createAuthor(t, db, "Austen")
	createBook(t, repo, tolkien.ID, "The Silmarillion", "1")
	createBook(t, repo, austen.ID, "Persuasion", "2")
	createBook(t, repo, tolkien.ID, "The Hobbit", "3")
	createBook(t, repo, austen.ID, "Emma", "4")

	list, err := repo.ListBooks("", SortByAuthor)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emma", "Persuasion", "The Hobbit", "The Silmarillion"}, titles(list))

	resorted := append([]entities.Book(nil), list...)
	sort.SliceStable(resorted, func(i, j int) bool {
		if resorted[i].Author.Name != resorted[j].Author.Name {
			return resorted[i].Author.Name < resorted[j].Author.Name
		}
		return resorted[i].Title < resorted[j].Title
	})
	assert.Equal(t, titles(list), titles(resorted))
}

func TestRepository_ListBooks_UnknownSortFallsBackToTitle(t *testing.T) {
	repo, db := setupTestDB(t)
	tolkien := createAuthor(t, db, "Tolkien")
	austen := createAuthor(t, db, "Austen")
	createBook(t, repo, tolkien.ID, "Beren and Luthien", "1")
	createBook(t, repo, austen.ID, "Sense and Sensibility", "2")

	byTitle, err := repo.ListBooks("", SortByTitle)
	require.NoError(t, err)
	byPrice, err := repo.ListBooks("", SortKey("price"))
	require.NoError(t, err)
	assert.Equal(t, titles(byTitle), titles(byPrice))
}

func TestRepository_ListBooks_Search(t *testing.T) {
	repo, db := setupTestDB(t)
	tolkien := createAuthor(t, db, "J.R.R. Tolkien")
	austen := createAuthor(t, db, "Jane Austen")
	createBook(t, repo, tolkien.ID, "The Hobbit", "1")
	createBook(t, repo, austen.ID, "Emma", "2")
	createBook(t, repo, austen.ID, "100% Pure_Prose", "3")

	tests := []struct {
		query    string
		expected []string
	}{
		{"hobbit", []string{"The Hobbit"}},
		{"HOBBIT", []string{"The Hobbit"}},
		{"austen", []string{"100% Pure_Prose", "Emma"}},
		{"TOLK", []string{"The Hobbit"}},
		{"%", []string{"100% Pure_Prose"}},
		{"e_P", []string{"100% Pure_Prose"}},
		{"dune", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			list, err := repo.ListBooks(tt.query, SortByTitle)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, titles(list))
		})
	}
}

func TestRepository_DeleteBook_RemovesOrphanAuthor(t *testing.T) {
	repo, db := setupTestDB(t)
	author := createAuthor(t, db, "Harper Lee")
	book := createBook(t, repo, author.ID, "To Kill a Mockingbird", "1")

	result, err := repo.DeleteBook(book.ID)
	require.NoError(t, err)
	assert.True(t, result.AuthorRemoved)
	assert.Equal(t, "To Kill a Mockingbird", result.Book.Title)

	_, err = repo.GetBookByID(book.ID)
	assert.True(t, entities.IsNotFound(err))
	_, err = authors.NewRepository(db).GetAuthorByID(author.ID)
	assert.True(t, entities.IsNotFound(err))
}

func TestRepository_DeleteBook_KeepsAuthorWithRemainingBooks(t *testing.T) {
	repo, db := setupTestDB(t)
	author := createAuthor(t, db, "Tolkien")
	hobbit := createBook(t, repo, author.ID, "The Hobbit", "1")
	createBook(t, repo, author.ID, "The Silmarillion", "2")

	result, err := repo.DeleteBook(hobbit.ID)
	require.NoError(t, err)
	assert.False(t, result.AuthorRemoved)

	remaining, err := authors.NewRepository(db).GetAuthorByID(author.ID)
	require.NoError(t, err)
	require.Len(t, remaining.Books, 1)
	assert.Equal(t, "The Silmarillion", remaining.Books[0].Title)
}

func TestRepository_DeleteBook_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.DeleteBook(404)
	assert.True(t, entities.IsNotFound(err))
}

func TestRepository_DeleteBook_RollsBackOnAuthorFailure(t *testing.T) {
	repo, db := setupTestDB(t)
	author := createAuthor(t, db, "Harper Lee")
	book := createBook(t, repo, author.ID, "To Kill a Mockingbird", "1")

	// Fail the orphan author delete; the book delete must be undone with it.
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:fail_author_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "authors" {
			_ = tx.AddError(fmt.Errorf("injected failure"))
		}
	}))

	_, err := repo.DeleteBook(book.ID)
	require.Error(t, err)

	require.NoError(t, db.Callback().Delete().Remove("test:fail_author_delete"))

	_, err = repo.GetBookByID(book.ID)
	assert.NoError(t, err)
	_, err = authors.NewRepository(db).GetAuthorByID(author.ID)
	assert.NoError(t, err)
}
