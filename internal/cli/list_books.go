package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/config"
	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/metadata"
)

// ListBooksCommand prints the catalog the same way the home page lists it.
type ListBooksCommand struct {
	Query        string
	Sort         string
	DatabasePath string

	Out io.Writer
}

func NewListBooksCommand() *ListBooksCommand {
	return &ListBooksCommand{Out: os.Stdout}
}

func (cmd *ListBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list-books", flag.ContinueOnError)

	fs.StringVar(&cmd.Query, "q", "", "Only show books whose title or author contains this text")
	fs.StringVar(&cmd.Sort, "sort", "title", "Sort order: title or author")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list-books [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List books in the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s list-books -sort author\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s list-books -q tolkien -db ./data/library.sqlite\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ListBooksCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist: %s", cmd.DatabasePath)
	}

	db, err := database.Open(cmd.DatabasePath, "silent")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	svc := catalog.NewServiceFromDB(db.DB, metadata.NoopResolver{})
	books, sortKey, err := svc.ListBooks(context.Background(), cmd.Query, cmd.Sort)
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	if len(books) == 0 {
		fmt.Fprintln(cmd.Out, "No books found.")
		return nil
	}

	for _, book := range books {
		author := ""
		if book.Author != nil {
			author = book.Author.Name
		}
		fmt.Fprintf(cmd.Out, "%-6d %-40s %-25s %s\n", book.ID, book.String(), author, book.ISBN)
	}
	fmt.Fprintf(cmd.Out, "\n%d books, sorted by %s\n", len(books), sortKey)
	return nil
}
