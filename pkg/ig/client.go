package ig

import (
	"context"
	"time"
)

// Config configures a Client. Fields are resolved the way the teacher's
// capi.Config resolves CF credentials: presence, not an explicit mode
// flag, decides which login variant New uses.
//
//   - CST + SecurityToken + AccountID + APIKey populated: the client
//     starts already logged in with a Certificate token; no login call is
//     made.
//   - AccessToken + RefreshToken + AccountID + APIKey populated: same,
//     but with an OAuth token.
//   - Username + Password + APIKey populated (no token fields): New
//     performs a certificate login before returning.
//   - APIKey alone: the client starts with no credentials; the caller is
//     expected to log in explicitly.
type Config struct {
	// RootURL defaults to https://api.ig.com/gateway/deal when empty.
	RootURL string `json:"rootUrl" yaml:"rootUrl"`

	APIKey   string `json:"apiKey" yaml:"apiKey"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	CST           string `json:"cst,omitempty" yaml:"cst,omitempty"`
	SecurityToken string `json:"securityToken,omitempty" yaml:"securityToken,omitempty"`

	AccessToken  string `json:"accessToken,omitempty" yaml:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty" yaml:"refreshToken,omitempty"`

	AccountID string `json:"accountId,omitempty" yaml:"accountId,omitempty"`

	// Timeout bounds a single HTTP exchange. Defaults to 30s.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// RetryMax, RetryWaitMin, RetryWaitMax configure the transport's own
	// retry loop. This is independent of the pagination contract (§4.2),
	// which never retries a failed page. Defaults to no retries.
	RetryMax     int           `json:"retryMax,omitempty" yaml:"retryMax,omitempty"`
	RetryWaitMin time.Duration `json:"retryWaitMin,omitempty" yaml:"retryWaitMin,omitempty"`
	RetryWaitMax time.Duration `json:"retryWaitMax,omitempty" yaml:"retryWaitMax,omitempty"`

	Logger  Logger `json:"-" yaml:"-"`
	Debug   bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
}

// SessionClient exposes the session login/logout/switch operations of
// §4.4.
type SessionClient interface {
	LoginCertificate(ctx context.Context, username, password string) (*LoginResult, error)
	LoginOAuth(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	Switch(ctx context.Context, accountID string) (*SwitchResult, error)
}

// AccountsClient exposes account listing and preferences.
type AccountsClient interface {
	List(ctx context.Context) ([]Account, error)
	Preferences(ctx context.Context) (*AccountPreferences, error)
}

// MarketsClient exposes market snapshots.
type MarketsClient interface {
	GetByEpics(ctx context.Context, epics []Epic) ([]Market, error)
}

// NodesClient exposes the market-navigation tree.
type NodesClient interface {
	GetNode(ctx context.Context, nodeID string, depth int) (*Node, error)
}

// WatchlistsClient exposes watchlist management.
type WatchlistsClient interface {
	List(ctx context.Context) ([]Watchlist, error)
	Get(ctx context.Context, watchlistID string) (*Watchlist, []Market, error)
	Create(ctx context.Context, name string, epics []Epic) (*WatchlistCreateResult, error)
	AddEpic(ctx context.Context, watchlistID string, epic Epic) error
	RemoveEpic(ctx context.Context, watchlistID string, epic Epic) error
	Delete(ctx context.Context, watchlistID string) error
}

// SentimentClient exposes client-positioning sentiment.
type SentimentClient interface {
	Get(ctx context.Context, marketID MarketID) (*MarketSentiment, error)
	GetBatch(ctx context.Context, marketIDs []MarketID) ([]MarketSentiment, error)
}

// PositionsClient exposes open-position management.
type PositionsClient interface {
	List(ctx context.Context) ([]Position, error)
	Get(ctx context.Context, dealID DealID) (*Position, error)
	Open(ctx context.Context, req OpenPositionRequest) (*DealConfirmation, error)
	Close(ctx context.Context, req ClosePositionRequest) (*DealConfirmation, error)
}

// OpenPositionRequest is the payload for PositionsClient.Open.
type OpenPositionRequest struct {
	Epic           Epic
	Direction      Direction
	Size           float64
	OrderType      string
	Level          *float64
	CurrencyCode   CurrencyCode
	ForceOpen      bool
	GuaranteedStop bool
	DealReference  *DealReference
}

// ClosePositionRequest is the payload for PositionsClient.Close.
type ClosePositionRequest struct {
	DealID    DealID
	Direction Direction
	Size      float64
	OrderType string
}

// WorkingOrdersClient exposes pending-order management.
type WorkingOrdersClient interface {
	List(ctx context.Context) ([]WorkingOrder, error)
	Create(ctx context.Context, req CreateWorkingOrderRequest) (*DealConfirmation, error)
	Update(ctx context.Context, dealID DealID, req UpdateWorkingOrderRequest) (*DealConfirmation, error)
	Delete(ctx context.Context, dealID DealID) (*DealConfirmation, error)
}

// CreateWorkingOrderRequest is the payload for WorkingOrdersClient.Create.
type CreateWorkingOrderRequest struct {
	Epic          Epic
	Direction     Direction
	Size          float64
	Level         float64
	OrderType     string
	Expiry        WorkingOrderExpiryType
	GoodTillDate  *time.Time
	DealReference *DealReference
}

// UpdateWorkingOrderRequest is the payload for WorkingOrdersClient.Update.
type UpdateWorkingOrderRequest struct {
	Level        float64
	Expiry       WorkingOrderExpiryType
	GoodTillDate *time.Time
}

// HistoryClient exposes transaction and activity history, both paginated
// via PageStream.
type HistoryClient interface {
	Transactions(ctx context.Context, from, to time.Time) *PageStream[Transaction]
	Activity(ctx context.Context, from, to time.Time) *PageStream[HistoryActivity]
}

// ApplicationsClient exposes the current API key's rate allowance.
type ApplicationsClient interface {
	Current(ctx context.Context) (*Application, error)
}

// Client is the top-level API handle: exactly one HTTP client and one
// mutable session per instance (§3). Endpoint namespace accessors return
// non-owning handles that must not outlive Client.
type Client interface {
	Session() SessionClient
	Accounts() AccountsClient
	Markets() MarketsClient
	Nodes() NodesClient
	Watchlists() WatchlistsClient
	Sentiment() SentimentClient
	Positions() PositionsClient
	WorkingOrders() WorkingOrdersClient
	History() HistoryClient
	Applications() ApplicationsClient

	// Credentials returns the currently held Credentials, or a
	// ErrorKindInvalidCredentials Error when none are set.
	Credentials() (Credentials, error)

	// Close tears down the owned HTTP client, cancelling any in-flight
	// work. Close is idempotent.
	Close() error
}
