package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength = 255
	MaxLinkLength  = 255

	// Price is stored with 5 significant digits, 2 of them after the point.
	priceMaxIntegerDigits  = 3
	priceMaxFractionDigits = 2
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidPrice   = errors.New("price must be a number with at most 3 digits before and 2 after the decimal point")
)

// Price is a fixed-point amount in hundredths (5 digits, 2 decimal places).
type Price int64

// ParsePrice parses a decimal string such as "12", "4.5" or "-999.99".
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, hasPoint := strings.Cut(s, ".")
	if intPart == "" || len(intPart) > priceMaxIntegerDigits || len(fracPart) > priceMaxFractionDigits {
		return 0, ErrInvalidPrice
	}
	if hasPoint && fracPart == "" {
		return 0, ErrInvalidPrice
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, ErrInvalidPrice
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	var cents int64
	if fracPart != "" {
		cents, _ = strconv.ParseInt(fracPart, 10, 64)
		if len(fracPart) == 1 {
			cents *= 10
		}
	}

	p := Price(whole*100 + cents)
	if neg {
		p = -p
	}
	return p, nil
}

// MustParsePrice is ParsePrice for constants; it panics on malformed input.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(fmt.Sprintf("domain: bad price %q: %v", s, err))
	}
	return p
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders the price with exactly two decimals.
func (p Price) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the price as a JSON string ("5.50").
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (p *Price) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	parsed, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Recipe is owned by exactly one user and deleted together with it.
type Recipe struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TimeMinutes int       `json:"time_minutes"`
	Price       Price     `json:"price"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the field constraints storage relies on.
func (r *Recipe) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(r.Title) == "" {
		verr.Add("title", "title is required")
	} else if utf8.RuneCountInString(r.Title) > MaxTitleLength {
		verr.Add("title", fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if utf8.RuneCountInString(r.Link) > MaxLinkLength {
		verr.Add("link", fmt.Sprintf("link must be at most %d characters", MaxLinkLength))
	}
	if r.TimeMinutes < 0 {
		verr.Add("time_minutes", "time_minutes must not be negative")
	}
	if r.Price > 99999 || r.Price < -99999 {
		verr.Add("price", ErrInvalidPrice.Error())
	}
	if r.OwnerID == "" {
		verr.Add("owner", "owner is required")
	}
	return verr.OrNil()
}
