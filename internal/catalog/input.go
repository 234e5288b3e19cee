package catalog

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/mrlokans/bookalchemy/internal/entities"
	"github.com/mrlokans/bookalchemy/internal/metadata"
)

// AuthorInput carries the already-trimmed form values for a new author.
type AuthorInput struct {
	Name        string `json:"name" form:"name"`
	BirthDate   string `json:"birth_date" form:"birth_date"`
	DateOfDeath string `json:"date_of_death" form:"date_of_death"`
}

func (in AuthorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name,
			validation.Required.Error("name is required"),
		),
		validation.Field(&in.BirthDate,
			validation.Required.Error("birth date is required"),
			validation.Date(entities.DateLayout).Error("birth date must be a YYYY-MM-DD date"),
		),
		validation.Field(&in.DateOfDeath,
			validation.Date(entities.DateLayout).Error("date of death must be a YYYY-MM-DD date"),
		),
	)
}

// toAuthor converts validated input into an entity. Validate must have
// passed before calling it.
func (in AuthorInput) toAuthor() (*entities.Author, error) {
	birth, err := time.Parse(entities.DateLayout, in.BirthDate)
	if err != nil {
		return nil, &entities.ValidationError{Field: "birth_date", Message: "birth date must be a YYYY-MM-DD date"}
	}

	author := &entities.Author{Name: in.Name, BirthDate: birth}
	if in.DateOfDeath != "" {
		death, err := time.Parse(entities.DateLayout, in.DateOfDeath)
		if err != nil {
			return nil, &entities.ValidationError{Field: "date_of_death", Message: "date of death must be a YYYY-MM-DD date"}
		}
		if death.Before(birth) {
			return nil, &entities.ValidationError{Field: "date_of_death", Message: "date of death must not precede birth date"}
		}
		author.DateOfDeath = &death
	}
	return author, nil
}

// BookInput carries the already-trimmed form values for a new book.
type BookInput struct {
	Title           string `json:"title" form:"title"`
	ISBN            string `json:"isbn" form:"isbn"`
	PublicationYear string `json:"publication_year" form:"publication_year"`
	AuthorID        string `json:"author_id" form:"author_id"`
}

func (in BookInput) Validate(currentYear int) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("title is required"),
		),
		validation.Field(&in.ISBN,
			validation.Required.Error("ISBN is required"),
			validation.By(normalizedISBN),
		),
		validation.Field(&in.PublicationYear,
			validation.Required.Error("publication year is required"),
			validation.By(integer("publication year must be a valid number")),
			validation.By(yearBetween(0, currentYear)),
		),
		validation.Field(&in.AuthorID,
			validation.Required.Error("author is required"),
			is.Digit.Error("author must be a valid number"),
		),
	)
}

func (in BookInput) toBook() (*entities.Book, error) {
	year, err := strconv.Atoi(in.PublicationYear)
	if err != nil {
		return nil, &entities.ValidationError{Field: "publication_year", Message: "publication year must be a valid number"}
	}
	authorID, err := strconv.ParseUint(in.AuthorID, 10, 32)
	if err != nil || authorID == 0 {
		return nil, &entities.ValidationError{Field: "author_id", Message: "author must be a valid number"}
	}
	return &entities.Book{
		Title:           in.Title,
		ISBN:            metadata.NormalizeISBN(in.ISBN),
		PublicationYear: year,
		AuthorID:        uint(authorID),
	}, nil
}

func normalizedISBN(value any) error {
	s, _ := value.(string)
	isbn := metadata.NormalizeISBN(s)
	if isbn == "" {
		return errors.New("ISBN is required")
	}
	return nil
}

// integer accepts anything strconv.Atoi parses, leading zeros included.
func integer(message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := strconv.Atoi(s); err != nil {
			return validation.NewError("validation_not_integer", message)
		}
		return nil
	}
}

func yearBetween(min, max int) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		year, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		if year < min || year > max {
			return validation.NewError("validation_year_range",
				"publication year must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
		}
		return nil
	}
}

// toValidationError flattens ozzo validation errors into the catalog's
// ValidationError. Messages are ordered by field name so the result is
// stable; Field is only set when a single field failed.
func toValidationError(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &entities.ValidationError{Message: err.Error()}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, errs[field].Error())
	}

	verr := &entities.ValidationError{Message: strings.Join(messages, "; ")}
	if len(fields) == 1 {
		verr.Field = fields[0]
	}
	return verr
}
