package ig

import (
	"fmt"
	"strconv"
)

// AccountID is a validated dealing account identifier.
type AccountID struct{ raw string }

// NewAccountID validates raw and, on success, returns the identifier.
func NewAccountID(raw string) (AccountID, error) {
	if len(raw) < 1 || len(raw) > 30 {
		return AccountID{}, fmt.Errorf("account id must be 1..30 characters, got %d", len(raw))
	}

	return AccountID{raw: raw}, nil
}

// String returns the raw identifier.
func (id AccountID) String() string { return id.raw }

// IsZero reports whether id was never constructed through NewAccountID.
func (id AccountID) IsZero() bool { return id.raw == "" }

// DealID is a validated deal identifier.
type DealID struct{ raw string }

// NewDealID validates raw and, on success, returns the identifier.
func NewDealID(raw string) (DealID, error) {
	if len(raw) < 1 || len(raw) > 30 {
		return DealID{}, fmt.Errorf("deal id must be 1..30 characters, got %d", len(raw))
	}

	return DealID{raw: raw}, nil
}

func (id DealID) String() string { return id.raw }
func (id DealID) IsZero() bool   { return id.raw == "" }

func isDealReferenceByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '\\':
		return true
	default:
		return false
	}
}

// DealReference is a validated client-supplied deal reference.
type DealReference struct{ raw string }

// NewDealReference validates raw against the deal-reference charset
// ({A-Za-z0-9_-\}) and length (1..30).
func NewDealReference(raw string) (DealReference, error) {
	if len(raw) < 1 || len(raw) > 30 {
		return DealReference{}, fmt.Errorf("deal reference must be 1..30 characters, got %d", len(raw))
	}

	for i := 0; i < len(raw); i++ {
		if !isDealReferenceByte(raw[i]) {
			return DealReference{}, fmt.Errorf("deal reference contains invalid character %q at index %d", raw[i], i)
		}
	}

	return DealReference{raw: raw}, nil
}

func (r DealReference) String() string { return r.raw }
func (r DealReference) IsZero() bool   { return r.raw == "" }

// Epic is the platform's opaque tradable-instrument identifier.
type Epic struct{ raw string }

// NewEpic validates raw as a non-empty epic string.
func NewEpic(raw string) (Epic, error) {
	if raw == "" {
		return Epic{}, fmt.Errorf("epic must not be empty")
	}

	return Epic{raw: raw}, nil
}

func (e Epic) String() string { return e.raw }
func (e Epic) IsZero() bool   { return e.raw == "" }

func isUsernameByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '\\':
		return true
	default:
		return false
	}
}

// Username is a validated login username.
type Username struct{ raw string }

// NewUsername validates raw against the username charset and length
// (1..30).
func NewUsername(raw string) (Username, error) {
	if len(raw) < 1 || len(raw) > 30 {
		return Username{}, fmt.Errorf("username must be 1..30 characters, got %d", len(raw))
	}

	for i := 0; i < len(raw); i++ {
		if !isUsernameByte(raw[i]) {
			return Username{}, fmt.Errorf("username contains invalid character %q at index %d", raw[i], i)
		}
	}

	return Username{raw: raw}, nil
}

func (u Username) String() string { return u.raw }
func (u Username) IsZero() bool   { return u.raw == "" }

// Password is a validated login password. Its raw value is withheld from
// String() to avoid accidental disclosure in logs.
type Password struct{ raw string }

// NewPassword validates raw's length (1..350).
func NewPassword(raw string) (Password, error) {
	if len(raw) < 1 || len(raw) > 350 {
		return Password{}, fmt.Errorf("password must be 1..350 characters, got %d", len(raw))
	}

	return Password{raw: raw}, nil
}

// Raw returns the underlying password value. Named distinctly from
// String to make call sites that disclose the secret stand out.
func (p Password) Raw() string { return p.raw }

// String redacts the password.
func (p Password) String() string { return "***" }

func (p Password) IsZero() bool { return p.raw == "" }

// ClientID is a validated client identifier: decodable to a signed
// integer.
type ClientID struct {
	raw   string
	value int64
}

// NewClientID validates that raw decodes to a signed integer.
func NewClientID(raw string) (ClientID, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ClientID{}, fmt.Errorf("client id must decode to a signed integer: %w", err)
	}

	return ClientID{raw: raw, value: value}, nil
}

func (c ClientID) String() string { return c.raw }
func (c ClientID) Int64() int64   { return c.value }
func (c ClientID) IsZero() bool   { return c.raw == "" }

// APIKey is a validated platform API key.
type APIKey struct{ raw string }

// NewAPIKey validates raw as a non-empty API key.
func NewAPIKey(raw string) (APIKey, error) {
	if raw == "" {
		return APIKey{}, fmt.Errorf("API key must not be empty")
	}

	return APIKey{raw: raw}, nil
}

func (k APIKey) String() string { return k.raw }
func (k APIKey) IsZero() bool   { return k.raw == "" }

// CurrencyCode is a validated ISO 4217 three-letter currency code.
type CurrencyCode struct{ raw string }

// NewCurrencyCode validates raw as three ASCII uppercase letters.
func NewCurrencyCode(raw string) (CurrencyCode, error) {
	if len(raw) != 3 {
		return CurrencyCode{}, fmt.Errorf("currency code must be 3 characters, got %d", len(raw))
	}

	for i := 0; i < 3; i++ {
		if raw[i] < 'A' || raw[i] > 'Z' {
			return CurrencyCode{}, fmt.Errorf("currency code must be ASCII uppercase letters, got %q", raw)
		}
	}

	return CurrencyCode{raw: raw}, nil
}

func (c CurrencyCode) String() string { return c.raw }
func (c CurrencyCode) IsZero() bool   { return c.raw == "" }

// MarketID is the identifier used by research endpoints (e.g., sentiment)
// to name the underlying real-world instrument, as distinct from Epic.
type MarketID struct{ raw string }

// NewMarketID validates raw as a non-empty market id.
func NewMarketID(raw string) (MarketID, error) {
	if raw == "" {
		return MarketID{}, fmt.Errorf("market id must not be empty")
	}

	return MarketID{raw: raw}, nil
}

func (m MarketID) String() string { return m.raw }
func (m MarketID) IsZero() bool   { return m.raw == "" }
