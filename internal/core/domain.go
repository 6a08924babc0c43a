package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

type (
	// TxType says which aggregate bucket an amount contributes to.
	TxType string

	// Date is a calendar day with no time component.
	Date struct {
		time.Time
	}

	// Transaction is one recorded income or expense event. ID is assigned
	// by the store at creation and never changes afterwards; the rest of
	// the record is rewritten wholesale on update.
	Transaction struct {
		ID          string `json:"id"`
		Date        Date   `json:"date"`
		Type        TxType `json:"type"`
		Category    string `json:"category"`
		Amount      Money  `json:"amount"`
		Description string `json:"description,omitempty"`
	}
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrEmptyCategory      = errors.New("empty category")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("negative amount")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD). Dates that do
// not exist on the calendar (2024-02-30) are rejected, not normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the YYYY-MM bucket key for the date.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string, rejecting anything that
// does not parse to a real calendar date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}

// IsValidation reports whether err is one of the input validation
// errors, as opposed to a not-found or persistence failure.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrInvalidDate, ErrInvalidType, ErrEmptyCategory,
		ErrInvalidAmount, ErrNegativeAmount, ErrDescriptionTooLong,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
