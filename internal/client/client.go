// Package client wires the typed endpoint namespaces (session, accounts,
// markets, nodes, watchlists, sentiment, positions, working orders,
// history, applications) onto the internal/http pipeline and the
// internal/auth session, and implements pkg/ig.Client.
//
// Grounded on the teacher's internal/client.Client, which holds one
// *internalhttp.Client, one token manager, and a field per resource
// client; this type holds one *internalhttp.Client, one *auth.Session,
// and one field per IG endpoint namespace instead.
package client

import (
	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

// Client implements pkg/ig.Client.
type Client struct {
	http    *internalhttp.Client
	session *internalauth.Session

	sessionNS     *sessionClient
	accounts      *accountsClient
	markets       *marketsClient
	nodes         *nodesClient
	watchlists    *watchlistsClient
	sentiment     *sentimentClient
	positions     *positionsClient
	workingOrders *workingOrdersClient
	history       *historyClient
	applications  *applicationsClient
}

// New wires a Client around httpClient, with an empty session.
func New(httpClient *internalhttp.Client) *Client {
	session := internalauth.New()

	c := &Client{http: httpClient, session: session}
	c.sessionNS = &sessionClient{http: httpClient, session: session}
	c.accounts = &accountsClient{http: httpClient, session: session}
	c.markets = &marketsClient{http: httpClient, session: session}
	c.nodes = &nodesClient{http: httpClient, session: session}
	c.watchlists = &watchlistsClient{http: httpClient, session: session}
	c.sentiment = &sentimentClient{http: httpClient, session: session}
	c.positions = &positionsClient{http: httpClient, session: session}
	c.workingOrders = &workingOrdersClient{http: httpClient, session: session}
	c.history = &historyClient{http: httpClient, session: session}
	c.applications = &applicationsClient{http: httpClient, session: session}

	return c
}

func (c *Client) Session() ig.SessionClient            { return c.sessionNS }
func (c *Client) Accounts() ig.AccountsClient           { return c.accounts }
func (c *Client) Markets() ig.MarketsClient             { return c.markets }
func (c *Client) Nodes() ig.NodesClient                 { return c.nodes }
func (c *Client) Watchlists() ig.WatchlistsClient       { return c.watchlists }
func (c *Client) Sentiment() ig.SentimentClient         { return c.sentiment }
func (c *Client) Positions() ig.PositionsClient         { return c.positions }
func (c *Client) WorkingOrders() ig.WorkingOrdersClient { return c.workingOrders }
func (c *Client) History() ig.HistoryClient             { return c.history }
func (c *Client) Applications() ig.ApplicationsClient   { return c.applications }

func (c *Client) Credentials() (ig.Credentials, error) { return c.session.Credentials() }

// AdoptCredentials installs creds directly, bypassing login — used when a
// caller already holds a valid token (e.g. pkg/igclient.New resolving a
// Config that carries a CST/OAuth pair up front).
func (c *Client) AdoptCredentials(creds ig.Credentials) { c.session.Update(creds) }

func (c *Client) Close() error { return c.http.Close() }
