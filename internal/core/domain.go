package core

import (
	"errors"
	"strings"
	"time"
)

// FallbackCategoryID names the category used for unknown or missing identifiers.
const FallbackCategoryID = "other"

const (
	minDescriptionLen = 3
	maxDescriptionLen = 200
)

type (
	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Icon  string `json:"icon,omitempty"`
	}

	Transaction struct {
		ID          string    `json:"id"`
		Amount      Money     `json:"amount"`
		Description string    `json:"description"`
		Date        Date      `json:"date"`
		Category    string    `json:"category"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	Budget struct {
		CategoryID string `json:"categoryId"`
		Amount     Money  `json:"amount"`
		Month      Period `json:"month"`
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDescription    = errors.New("empty description")
	ErrDescriptionTooShort = errors.New("description too short (min 3 characters)")
	ErrDescriptionTooLong  = errors.New("description too long (max 200 characters)")
	ErrInvalidDate         = errors.New("invalid date")
	ErrEmptyCategory       = errors.New("empty category")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrEmptyID             = errors.New("empty id")
)

// CategoryID returns the category the transaction is accounted under.
func (t Transaction) CategoryID() string {
	if strings.TrimSpace(t.Category) == "" {
		return FallbackCategoryID
	}
	return t.Category
}

// Validate checks the fields a user can enter. It is meant for entry points;
// the store and the aggregation functions assume validated input.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if len([]rune(desc)) < minDescriptionLen {
		return ErrDescriptionTooShort
	}
	if len([]rune(t.Description)) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Equal reports whether both transactions carry the same field values.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Amount.Equal(o.Amount) &&
		t.Description == o.Description &&
		t.Date.Equal(o.Date) &&
		t.Category == o.Category &&
		t.CreatedAt.Equal(o.CreatedAt)
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if b.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return b.Month.Validate()
}

func (b Budget) Equal(o Budget) bool {
	return b.CategoryID == o.CategoryID && b.Amount.Equal(o.Amount) && b.Month == o.Month
}
