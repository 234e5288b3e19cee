package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/catalog"
)

type AuthorsController struct {
	catalog AuthorCatalog
}

func NewAuthorsController(catalog AuthorCatalog) *AuthorsController {
	return &AuthorsController{
		catalog: catalog,
	}
}

// ListAuthors returns all authors ordered by name.
// GET /api/authors
func (controller *AuthorsController) ListAuthors(c *gin.Context) {
	authors, err := controller.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"authors": authors, "count": len(authors)})
}

// CreateAuthor registers an author.
// POST /api/authors and POST /add_author
func (controller *AuthorsController) CreateAuthor(c *gin.Context) {
	var input catalog.AuthorInput
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	trimAll(&input.Name, &input.BirthDate, &input.DateOfDeath)

	author, err := controller.catalog.CreateAuthor(c.Request.Context(), input)
	if err != nil {
		respondCatalogError(c, err, "create author")
		return
	}

	respondCreated(c, "Author '"+author.Name+"' was added successfully", author)
}

// GetAuthor returns an author with their books.
// GET /api/authors/:id and GET /author/:id
func (controller *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := controller.catalog.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "get author")
		return
	}

	c.IndentedJSON(http.StatusOK, author)
}

// DeleteAuthor removes an author and all of their books.
// DELETE /api/authors/:id and POST /author/:id/delete
func (controller *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := controller.catalog.DeleteAuthor(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "delete author")
		return
	}

	respondSuccess(c, "Author '"+author.Name+"' and all related books were deleted successfully", gin.H{
		"author_id":     author.ID,
		"books_removed": len(author.Books),
	})
}
