package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/database/authors"
	"github.com/mrlokans/bookalchemy/internal/database/books"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

func seedCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.sqlite")
	db, err := database.Open(path, "silent")
	require.NoError(t, err)
	defer db.Close()

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	tolkien := &entities.Author{Name: "J.R.R. Tolkien", BirthDate: time.Date(1892, 1, 3, 0, 0, 0, 0, time.UTC)}
	austen := &entities.Author{Name: "Jane Austen", BirthDate: time.Date(1775, 12, 16, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, authorRepo.CreateAuthor(tolkien))
	require.NoError(t, authorRepo.CreateAuthor(austen))
	require.NoError(t, bookRepo.CreateBook(&entities.Book{Title: "The Hobbit", ISBN: "9780261103344", PublicationYear: 1937, AuthorID: tolkien.ID}))
	require.NoError(t, bookRepo.CreateBook(&entities.Book{Title: "Emma", ISBN: "9780141439587", PublicationYear: 1815, AuthorID: austen.ID}))
	return path
}

func TestListBooksCommand(t *testing.T) {
	path := seedCatalog(t)

	t.Run("sorted by title", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &ListBooksCommand{Out: &out}
		require.NoError(t, cmd.ParseFlags([]string{"-db", path}))
		require.NoError(t, cmd.Run())

		text := out.String()
		assert.Less(t, strings.Index(text, "Emma (1815)"), strings.Index(text, "The Hobbit (1937)"))
		assert.Contains(t, text, "2 books, sorted by title")
	})

	t.Run("filtered", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &ListBooksCommand{Out: &out}
		require.NoError(t, cmd.ParseFlags([]string{"-db", path, "-q", "tolkien", "-sort", "author"}))
		require.NoError(t, cmd.Run())

		assert.Contains(t, out.String(), "The Hobbit")
		assert.NotContains(t, out.String(), "Emma")
		assert.Contains(t, out.String(), "1 books, sorted by author")
	})

	t.Run("no match", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &ListBooksCommand{Out: &out, DatabasePath: path, Query: "dune"}
		require.NoError(t, cmd.Run())
		assert.Equal(t, "No books found.\n", out.String())
	})

	t.Run("missing database", func(t *testing.T) {
		cmd := &ListBooksCommand{Out: &bytes.Buffer{}, DatabasePath: filepath.Join(t.TempDir(), "nope.sqlite")}
		assert.ErrorContains(t, cmd.Run(), "database does not exist")
	})
}

func TestLookupSummaryCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/isbn/9780261103344.json":
			w.Write([]byte(`{"title":"The Hobbit","description":{"type":"/type/text","value":"  There and back again. "}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	t.Run("prints summary", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &LookupSummaryCommand{Out: &out}
		require.NoError(t, cmd.ParseFlags([]string{"-isbn", "978-0-261-10334-4", "-base-url", server.URL, "-timeout", "2s"}))
		require.NoError(t, cmd.Run())
		assert.Equal(t, "There and back again.\n", out.String())
	})

	t.Run("reports missing summary", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &LookupSummaryCommand{Out: &out, ISBN: "0000000000", BaseURL: server.URL, Timeout: time.Second}
		require.NoError(t, cmd.Run())
		assert.Equal(t, "No summary found for ISBN 0000000000\n", out.String())
	})

	t.Run("requires isbn", func(t *testing.T) {
		cmd := &LookupSummaryCommand{Out: &bytes.Buffer{}}
		assert.Error(t, cmd.ParseFlags([]string{"-isbn", " - "}))
	})
}
