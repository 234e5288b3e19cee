package entities

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for author life dates.
const DateLayout = "2006-01-02"

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"index;not null" json:"name"`
	BirthDate   time.Time  `gorm:"type:date;not null" json:"birth_date"`
	DateOfDeath *time.Time `gorm:"type:date" json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
}

type Book struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ISBN            string  `gorm:"uniqueIndex;not null" json:"isbn"`
	Title           string  `gorm:"index;not null" json:"title"`
	PublicationYear int     `gorm:"not null" json:"publication_year"`
	Summary         *string `gorm:"type:text" json:"summary,omitempty"`
	AuthorID        uint    `gorm:"index;not null" json:"author_id"`
	Author          *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (a Author) String() string {
	return a.Name
}

func (b Book) String() string {
	if b.PublicationYear != 0 {
		return fmt.Sprintf("%s (%d)", b.Title, b.PublicationYear)
	}
	return b.Title
}

// HasSummary reports whether the book carries a non-empty summary.
func (b Book) HasSummary() bool {
	return b.Summary != nil && *b.Summary != ""
}
