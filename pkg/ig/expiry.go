package ig

import (
	"fmt"
	"strings"
	"time"
)

// ExpiryKind discriminates Expiry's three variants.
type ExpiryKind int

const (
	// ExpiryNone marks an instrument with no expiry field at all.
	ExpiryNone ExpiryKind = iota
	// ExpiryDailyFunded marks a Daily Funded Bet (DFB): indefinite expiry,
	// daily funding.
	ExpiryDailyFunded
	// ExpiryForward marks an instrument with a concrete expiry date.
	ExpiryForward
)

// Expiry is the instrument-expiry encoding described in the external
// interfaces: "-" for none, "DFB" for daily-funded, or a date for
// forward contracts.
type Expiry struct {
	kind ExpiryKind
	date time.Time // only meaningful when kind == ExpiryForward
}

// NewNoneExpiry constructs the "-" variant.
func NewNoneExpiry() Expiry { return Expiry{kind: ExpiryNone} }

// NewDailyFundedExpiry constructs the "DFB" variant.
func NewDailyFundedExpiry() Expiry { return Expiry{kind: ExpiryDailyFunded} }

// NewForwardExpiry constructs a dated expiry variant.
func NewForwardExpiry(date time.Time) Expiry {
	return Expiry{kind: ExpiryForward, date: date}
}

func (e Expiry) Kind() ExpiryKind { return e.kind }

// Date returns the forward expiry date. It is the zero time for the
// other two variants.
func (e Expiry) Date() time.Time { return e.date }

const (
	expiryDayMonthYear = "02-Jan-06"
	expiryMonthYear    = "Jan-06"
	expiryISONoTZ      = "2006-01-02T15:04:05"
)

// ParseExpiry decodes the one-string-field expiry encoding documented in
// the external interfaces: "-" maps to none; "DFB" (case-insensitive)
// maps to daily-funded; otherwise the value is parsed as dd-MMM-yy or
// MMM-yy (whose decoded date is moved to that month's last day) or an
// ISO timestamp without a timezone, yielding a forward value.
func ParseExpiry(raw string) (Expiry, error) {
	switch {
	case raw == "-":
		return NewNoneExpiry(), nil
	case strings.EqualFold(raw, "DFB"):
		return NewDailyFundedExpiry(), nil
	}

	if date, err := time.Parse(expiryDayMonthYear, titleCaseMonth(raw)); err == nil {
		return NewForwardExpiry(date), nil
	}

	if date, err := time.Parse(expiryMonthYear, titleCaseMonth(raw)); err == nil {
		return NewForwardExpiry(lastDayOfMonth(date)), nil
	}

	if date, err := time.Parse(expiryISONoTZ, raw); err == nil {
		return NewForwardExpiry(date), nil
	}

	return Expiry{}, fmt.Errorf("unrecognized expiry encoding %q", raw)
}

// titleCaseMonth lowercases everything but the leading letter of each
// run of letters, so "15-DEC-24" becomes "15-Dec-24" as time.Parse's
// "Jan" reference expects. Digits and separators pass through unchanged.
func titleCaseMonth(raw string) string {
	b := []byte(strings.ToLower(raw))

	atWordStart := true

	for i, c := range b {
		isLetter := c >= 'a' && c <= 'z'

		if isLetter && atWordStart {
			b[i] = c - ('a' - 'A')
		}

		atWordStart = !isLetter
	}

	return string(b)
}

// String re-encodes the expiry: last-day-of-month dates as MMM-yy;
// other forward dates as dd-MMM-yy. Both encodings are upper-cased to
// match the platform's own wire representation (e.g. "DEC-24").
func (e Expiry) String() string {
	switch e.kind {
	case ExpiryNone:
		return "-"
	case ExpiryDailyFunded:
		return "DFB"
	case ExpiryForward:
		if isLastDayOfMonth(e.date) {
			return strings.ToUpper(e.date.Format(expiryMonthYear))
		}

		return strings.ToUpper(e.date.Format(expiryDayMonthYear))
	default:
		return "-"
	}
}

func lastDayOfMonth(date time.Time) time.Time {
	firstOfNextMonth := time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, date.Location())

	return firstOfNextMonth.AddDate(0, 0, -1)
}

func isLastDayOfMonth(date time.Time) bool {
	return date.Day() == lastDayOfMonth(date).Day()
}

func (e Expiry) MarshalJSON() ([]byte, error) {
	return []byte(`"` + e.String() + `"`), nil
}

func (e *Expiry) UnmarshalJSON(data []byte) error {
	raw, err := unquoteJSONString(data)
	if err != nil {
		return err
	}

	parsed, err := ParseExpiry(raw)
	if err != nil {
		return err
	}

	*e = parsed

	return nil
}
