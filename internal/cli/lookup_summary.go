package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/bookalchemy/internal/config"
	"github.com/mrlokans/bookalchemy/internal/metadata"
)

// LookupSummaryCommand resolves a summary for an ISBN without touching the
// catalog.
type LookupSummaryCommand struct {
	ISBN      string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	Out io.Writer
}

func NewLookupSummaryCommand() *LookupSummaryCommand {
	return &LookupSummaryCommand{Out: os.Stdout}
}

func (cmd *LookupSummaryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("lookup-summary", flag.ContinueOnError)

	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN to look up (required)")
	fs.StringVar(&cmd.BaseURL, "base-url", config.DefaultOpenLibraryBaseURL, "Open Library base URL")
	fs.StringVar(&cmd.UserAgent, "user-agent", config.DefaultOpenLibraryUserAgent, "User-Agent sent to Open Library")
	fs.DurationVar(&cmd.Timeout, "timeout", metadata.DefaultTimeout, "Timeout for each Open Library request")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s lookup-summary [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch a book summary from Open Library (edition first, then work).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s lookup-summary -isbn 978-0-261-10334-4\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s lookup-summary -isbn 9780261103344 -timeout 3s\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if metadata.NormalizeISBN(cmd.ISBN) == "" {
		fs.Usage()
		return fmt.Errorf("isbn is required")
	}

	return nil
}

func (cmd *LookupSummaryCommand) Run() error {
	client := metadata.NewOpenLibraryClient(metadata.ClientConfig{
		BaseURL:   cmd.BaseURL,
		UserAgent: cmd.UserAgent,
		Timeout:   cmd.Timeout,
	})
	isbn := metadata.NormalizeISBN(cmd.ISBN)

	summary := client.FetchSummary(context.Background(), isbn)
	if summary == "" {
		fmt.Fprintf(cmd.Out, "No summary found for ISBN %s\n", isbn)
		return nil
	}

	fmt.Fprintln(cmd.Out, summary)
	return nil
}
