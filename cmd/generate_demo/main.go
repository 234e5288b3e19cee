// Command generate_demo creates a demo catalog with public domain authors and books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/metadata"
)

const defaultDemoDatabasePath = "./demo/demo.sqlite"

type demoAuthor struct {
	Input catalog.AuthorInput
	Books []demoBook
}

type demoBook struct {
	Title   string
	ISBN    string
	Year    string
	Summary string
}

// demoSummaries stands in for Open Library so the demo can be generated offline.
type demoSummaries map[string]string

func (d demoSummaries) FetchSummary(_ context.Context, isbn string) string {
	return d[isbn]
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo catalog at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	authors := getPublicDomainAuthors()
	summaries := demoSummaries{}
	for _, a := range authors {
		for _, b := range a.Books {
			if b.Summary != "" {
				summaries[metadata.NormalizeISBN(b.ISBN)] = b.Summary
			}
		}
	}

	svc := catalog.NewServiceFromDB(db.DB, summaries)
	ctx := context.Background()

	for _, a := range authors {
		author, err := svc.CreateAuthor(ctx, a.Input)
		if err != nil {
			log.Printf("Failed to save author %s: %v", a.Input.Name, err)
			continue
		}
		for _, b := range a.Books {
			book, err := svc.CreateBook(ctx, catalog.BookInput{
				Title:           b.Title,
				ISBN:            b.ISBN,
				PublicationYear: b.Year,
				AuthorID:        strconv.FormatUint(uint64(author.ID), 10),
			})
			if err != nil {
				log.Printf("Failed to save book %s: %v", b.Title, err)
				continue
			}
			log.Printf("Saved: %s by %s", book, author)
		}
	}

	log.Println("Demo catalog generated successfully!")
}

func getPublicDomainAuthors() []demoAuthor {
	return []demoAuthor{
		{
			Input: catalog.AuthorInput{Name: "Jane Austen", BirthDate: "1775-12-16", DateOfDeath: "1817-07-18"},
			Books: []demoBook{
				{
					Title:   "Pride and Prejudice",
					ISBN:    "978-0-14-143951-8",
					Year:    "1813",
					Summary: "Elizabeth Bennet navigates manners, marriage and her own first impressions of Mr Darcy.",
				},
				{Title: "Emma", ISBN: "978-0-14-143958-7", Year: "1815"},
				{Title: "Persuasion", ISBN: "978-0-14-143968-6", Year: "1817"},
			},
		},
		{
			Input: catalog.AuthorInput{Name: "Marcus Aurelius", BirthDate: "0121-04-26", DateOfDeath: "0180-03-17"},
			Books: []demoBook{
				{
					Title:   "Meditations",
					ISBN:    "978-0-14-044933-4",
					Year:    "180",
					Summary: "Private notes of a Roman emperor on duty, mortality and the discipline of the mind.",
				},
			},
		},
		{
			Input: catalog.AuthorInput{Name: "Mary Shelley", BirthDate: "1797-08-30", DateOfDeath: "1851-02-01"},
			Books: []demoBook{
				{
					Title:   "Frankenstein",
					ISBN:    "978-0-14-143947-1",
					Year:    "1818",
					Summary: "A young scientist creates life and is undone by his refusal to take responsibility for it.",
				},
			},
		},
		{
			Input: catalog.AuthorInput{Name: "Herman Melville", BirthDate: "1819-08-01", DateOfDeath: "1891-09-28"},
			Books: []demoBook{
				{Title: "Moby-Dick", ISBN: "978-0-14-243724-7", Year: "1851"},
				{Title: "Bartleby, the Scrivener", ISBN: "978-1-61219-091-1", Year: "1853"},
			},
		},
	}
}
