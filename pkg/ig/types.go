package ig

import "time"

// Account summarizes one dealing account reachable from the current
// session.
type Account struct {
	AccountID    string  `json:"accountId"`
	AccountName  string  `json:"accountName"`
	AccountType  string  `json:"accountType"`
	Preferred    bool    `json:"preferred"`
	Balance      Balance `json:"balance"`
	Currency     string  `json:"currency"`
}

// Balance is an account's funds snapshot.
type Balance struct {
	Balance    float64 `json:"balance"`
	Deposit    float64 `json:"deposit"`
	ProfitLoss float64 `json:"profitLoss"`
	Available  float64 `json:"available"`
}

// AccountPreferences holds per-account trading preferences.
type AccountPreferences struct {
	TrailingStopsEnabled bool `json:"trailingStopsEnabled"`
}

// LoginResult is produced by a session login call. Its Token carries
// the login variant: a Certificate token from a certificate login, an
// OAuth token from an OAuth login.
type LoginResult struct {
	AccountID           string
	ClientID            string
	Timezone            *time.Location
	StreamerURL         string
	LightstreamerEndpoint string
	Token               Token
}

// SwitchResult is returned by the session-switch endpoint: capability
// flags only. The account id switched to is mutated onto Credentials by
// the caller only after this result is known to be a success.
type SwitchResult struct {
	TrailingStopsEnabled bool `json:"trailingStopsEnabled"`
	DealingEnabled       bool `json:"dealingEnabled"`
	HasActiveDemoAccounts bool `json:"hasActiveDemoAccounts"`
	HasActiveLiveAccounts bool `json:"hasActiveLiveAccounts"`
}

// Market is a tradable instrument snapshot as returned by the
// markets-by-epics endpoint.
//
// IG's wire payload carries the update time twice: UpdateTimeUTC is a
// full, self-describing instant, while UpdateTime is a bare
// exchange-local time-of-day (HH:mm:ss, no date, no offset) that only
// means something once paired with the account's timezone and a
// calendar date. LastUpdated is that pairing, computed by the decoder
// from UpdateTime, the account's Location, and the response's
// ServerDate; it is zero when either input was unavailable.
type Market struct {
	Epic             string       `json:"epic"`
	InstrumentName   string       `json:"instrumentName"`
	Expiry           Expiry       `json:"expiry"`
	MarketStatus     MarketStatus `json:"marketStatus"`
	Bid              *float64     `json:"bid"`
	Offer            *float64     `json:"offer"`
	UpdateTime       string       `json:"updateTime"`
	UpdateTimeUTC    string       `json:"updateTimeUTC"`
	LastUpdated      time.Time    `json:"-"`
	DelayTime        float64      `json:"delayTime"`
	LotSize          float64      `json:"lotSize"`
	High             *float64     `json:"high"`
	Low              *float64     `json:"low"`
	PercentageChange float64      `json:"percentageChange"`
	NetChange        float64      `json:"netChange"`
}

// Node is one entry in the market-navigation tree: a market category
// that may contain sub-nodes and/or tradable markets.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Nodes    []Node   `json:"-"`
	Markets  []Market `json:"markets"`
}

// Watchlist is a named collection of epics.
type Watchlist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Editable bool   `json:"editable"`
	Deleteable bool `json:"deleteable"`
	Default  bool   `json:"defaultSystemWatchlist"`
}

// WatchlistCreateResult reports whether every requested epic was
// accepted into the newly created watchlist.
type WatchlistCreateResult struct {
	WatchlistID string         `json:"watchlistId"`
	Status      WatchlistStatus `json:"status"`
}

// MarketSentiment is the long/short positioning percentage for one
// market id.
type MarketSentiment struct {
	MarketID         string  `json:"marketId"`
	LongPositionPercentage  float64 `json:"longPositionPercentage"`
	ShortPositionPercentage float64 `json:"shortPositionPercentage"`
}

// Position is an open OTC deal. Per the recorded Open Question, the
// limit/stop fields exist on this REST-decoded type but are not
// populated by the streamed update decoder.
type Position struct {
	DealID        string    `json:"dealId"`
	DealReference string    `json:"dealReference"`
	Epic          string    `json:"epic"`
	Direction     Direction `json:"direction"`
	Size          float64   `json:"size"`
	Level         float64   `json:"level"`
	Currency      string    `json:"currency"`
	ControlledRisk bool     `json:"controlledRisk"`
	Limit         *float64  `json:"limitLevel"`
	Stop          *float64  `json:"stopLevel"`
	CreatedDate   string    `json:"createdDate"`
}

// DealConfirmation is the synchronous response to a position or
// working-order mutation, before the asynchronous streamed confirmation
// (if any) arrives.
type DealConfirmation struct {
	DealReference string `json:"dealReference"`
	DealID        string `json:"dealId"`
	DealStatus    string `json:"dealStatus"`
	Reason        string `json:"reason"`
	Status        PositionStatus `json:"status"`
}

// WorkingOrder is a pending (not-yet-triggered) order.
type WorkingOrder struct {
	DealID        string                 `json:"dealId"`
	Epic          string                 `json:"epic"`
	Direction     Direction              `json:"direction"`
	Size          float64                `json:"size"`
	Level         float64                `json:"orderLevel"`
	OrderType     string                 `json:"orderType"`
	Expiry        WorkingOrderExpiryType `json:"timeInForce"`
	GoodTillDate  *time.Time             `json:"goodTillDate"`
	CreatedDate   string                 `json:"createdDate"`
}

// Transaction is one entry in the account's transaction history.
type Transaction struct {
	Date         string  `json:"date"`
	Instrument   string  `json:"instrumentName"`
	ProfitAndLoss string `json:"profitAndLoss"`
	Currency     string  `json:"currency"`
	Reference    string  `json:"reference"`
}

// HistoryActivity is one entry in the account's activity history —
// position opens/closes, order amendments, and the like.
type HistoryActivity struct {
	Date        string `json:"date"`
	Epic        string `json:"epic"`
	DealID      string `json:"dealId"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Application is a non-owning handle reporting the current API key's
// usage and quota; it carries no identity of its own beyond what the
// platform returns for "this key".
type Application struct {
	APIKey               string `json:"apiKey"`
	Status               string `json:"status"`
	AllowanceAccountTrading    int `json:"allowanceAccountTrading"`
	AllowanceAccountOverall    int `json:"allowanceAccountOverall"`
	AllowanceAccountHistorical int `json:"allowanceAccountHistoricalData"`
	AllowanceApplicationOverall int `json:"allowanceApplicationOverall"`
}
