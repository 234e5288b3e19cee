package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/catalog"
)

type BooksController struct {
	catalog BookCatalog
}

func NewBooksController(catalog BookCatalog) *BooksController {
	return &BooksController{
		catalog: catalog,
	}
}

// ListBooks returns the catalog filtered by ?q= and ordered by ?sort=.
// GET / and GET /api/books
func (controller *BooksController) ListBooks(c *gin.Context) {
	query := c.Query("q")
	list, sortKey, err := controller.catalog.ListBooks(c.Request.Context(), query, c.Query("sort"))
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"books": list,
		"count": len(list),
		"q":     query,
		"sort":  sortKey,
	})
}

// SortRedirect keeps the search query while switching the sort order.
// GET /sort/:sort_key
func (controller *BooksController) SortRedirect(c *gin.Context) {
	params := url.Values{}
	params.Set("sort", c.Param("sort_key"))
	params.Set("q", c.Query("q"))
	c.Redirect(http.StatusFound, "/?"+params.Encode())
}

// NewBookForm returns what a client needs to render the add book form.
// GET /add_book
func (controller *BooksController) NewBookForm(c *gin.Context) {
	authors, err := controller.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"authors":      authors,
		"current_year": controller.catalog.CurrentYear(),
	})
}

// CreateBook registers a book and looks up its summary.
// POST /api/books and POST /add_book
func (controller *BooksController) CreateBook(c *gin.Context) {
	var input catalog.BookInput
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	trimAll(&input.Title, &input.ISBN, &input.PublicationYear, &input.AuthorID)

	book, err := controller.catalog.CreateBook(c.Request.Context(), input)
	if err != nil {
		respondCatalogError(c, err, "create book")
		return
	}

	respondCreated(c, "Book '"+book.Title+"' was added successfully", book)
}

// GetBook returns a single book with its author and summary.
// GET /api/books/:id and GET /book/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "get book")
		return
	}

	c.IndentedJSON(http.StatusOK, book)
}

// DeleteBook removes a book, and its author when no other book remains.
// DELETE /api/books/:id and POST /book/:id/delete
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := controller.catalog.DeleteBook(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "delete book")
		return
	}

	respondSuccess(c, "Book '"+result.Book.Title+"' was deleted successfully", gin.H{
		"book_id":        result.Book.ID,
		"author_id":      result.Book.AuthorID,
		"author_removed": result.AuthorRemoved,
	})
}
