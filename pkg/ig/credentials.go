package ig

import (
	"fmt"
	"time"
)

// TokenKind discriminates Token's two variants. A Token is one or the
// other, never both — the zero value is not a valid Token.
type TokenKind int

const (
	TokenKindUnknown TokenKind = iota
	// TokenKindCertificate identifies a CST/X-SECURITY-TOKEN session.
	TokenKindCertificate
	// TokenKindOAuth identifies an access/refresh/scope/type session.
	TokenKindOAuth
)

func (k TokenKind) String() string {
	switch k {
	case TokenKindCertificate:
		return "Certificate"
	case TokenKindOAuth:
		return "OAuth"
	default:
		return "Unknown"
	}
}

// Token is a closed sum of the two session variants IG issues. It is
// never silently coerced between variants: constructors validate the
// fields for their own variant only, and Kind is immutable for the
// lifetime of the value.
type Token struct {
	kind TokenKind

	// Certificate fields.
	access   string
	security string

	// OAuth fields.
	oauthAccess  string
	refresh      string
	scope        string
	oauthType    string

	expiresAt time.Time
}

// NewCertificateToken constructs a Certificate-variant Token.
func NewCertificateToken(access, security string, expiresAt time.Time) (Token, error) {
	if access == "" || security == "" {
		return Token{}, fmt.Errorf("certificate token requires non-empty access and security values")
	}

	return Token{kind: TokenKindCertificate, access: access, security: security, expiresAt: expiresAt}, nil
}

// NewOAuthToken constructs an OAuth-variant Token.
func NewOAuthToken(access, refresh, scope, tokenType string, expiresAt time.Time) (Token, error) {
	if access == "" {
		return Token{}, fmt.Errorf("oauth token requires a non-empty access value")
	}

	return Token{
		kind:        TokenKindOAuth,
		oauthAccess: access,
		refresh:     refresh,
		scope:       scope,
		oauthType:   tokenType,
		expiresAt:   expiresAt,
	}, nil
}

func (t Token) Kind() TokenKind { return t.kind }

// ExpiresAt is the absolute expiration timestamp. The core performs no
// automatic refresh: a caller reading an expired token receives it
// as-is.
func (t Token) ExpiresAt() time.Time { return t.expiresAt }

// Certificate returns the CST and security-token values. They are empty
// unless Kind() == TokenKindCertificate.
func (t Token) Certificate() (access, security string) { return t.access, t.security }

// OAuth returns the access/refresh/scope/type values. They are empty
// unless Kind() == TokenKindOAuth.
func (t Token) OAuth() (access, refresh, scope, tokenType string) {
	return t.oauthAccess, t.refresh, t.scope, t.oauthType
}

// Credentials holds one authenticated session's identity and token.
// Everything but the active account id is immutable for the lifetime of
// the value; switching accounts replaces the whole Credentials value
// behind Session's lock rather than mutating a field in place from
// outside it.
type Credentials struct {
	ClientID     ClientID `yaml:"clientId"`
	AccountID    AccountID `yaml:"accountId"`
	APIKey       APIKey   `yaml:"apiKey"`
	Token        Token    `yaml:"-"`
	StreamerURL  string   `yaml:"streamerUrl"`
	Timezone     *time.Location `yaml:"-"`
}

// HeaderKey names one of the reserved request headers.
type HeaderKey string

const (
	HeaderAPIKey       HeaderKey = "X-IG-API-KEY"
	HeaderCST          HeaderKey = "CST"
	HeaderSecurityToken HeaderKey = "X-SECURITY-TOKEN"
	HeaderAccountID    HeaderKey = "IG-ACCOUNT-ID"
	HeaderAuthorization HeaderKey = "Authorization"
	HeaderVersion      HeaderKey = "Version"
	HeaderContentType  HeaderKey = "Content-Type"
	HeaderAccept       HeaderKey = "Accept"
	HeaderRequestID    HeaderKey = "X-REQUEST-ID"
	HeaderDate         HeaderKey = "Date"
	HeaderMethodOverride HeaderKey = "_method"
)

// RequestHeaders deterministically assembles the credential headers for
// c, per the request-header assembly rule: the API key is always
// present; Certificate tokens add CST/X-SECURITY-TOKEN; OAuth tokens add
// IG-ACCOUNT-ID/Authorization. The two variant header sets are disjoint.
func (c Credentials) RequestHeaders() map[HeaderKey]string {
	headers := map[HeaderKey]string{
		HeaderAPIKey: c.APIKey.String(),
	}

	switch c.Token.Kind() {
	case TokenKindCertificate:
		access, security := c.Token.Certificate()
		headers[HeaderCST] = access
		headers[HeaderSecurityToken] = security
	case TokenKindOAuth:
		access, _, _, tokenType := c.Token.OAuth()
		headers[HeaderAccountID] = c.AccountID.String()
		headers[HeaderAuthorization] = tokenType + " " + access
	}

	return headers
}
