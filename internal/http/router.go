package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	authorsController := NewAuthorsController(cfg.Authors)

	router.GET("/health", health.Status)

	// Browsing
	router.GET("/", booksController.ListBooks)
	router.GET("/sort/:sort_key", booksController.SortRedirect)

	// Form-style routes
	router.GET("/add_book", booksController.NewBookForm)
	router.POST("/add_book", booksController.CreateBook)
	router.POST("/add_author", authorsController.CreateAuthor)
	router.GET("/book/:id", booksController.GetBook)
	router.POST("/book/:id/delete", booksController.DeleteBook)
	router.GET("/author/:id", authorsController.GetAuthor)
	router.POST("/author/:id/delete", authorsController.DeleteAuthor)

	api := router.Group("/api")
	{
		api.GET("/books", booksController.ListBooks)
		api.POST("/books", booksController.CreateBook)
		api.GET("/books/:id", booksController.GetBook)
		api.DELETE("/books/:id", booksController.DeleteBook)

		api.GET("/authors", authorsController.ListAuthors)
		api.POST("/authors", authorsController.CreateAuthor)
		api.GET("/authors/:id", authorsController.GetAuthor)
		api.DELETE("/authors/:id", authorsController.DeleteAuthor)

		if cfg.Audit != nil {
			auditController := NewAuditController(cfg.Audit)
			api.GET("/audit", auditController.GetAuditEvents)
		}
	}

	return router
}
