package ig

import "fmt"

// MarketStatus is the closed set of states a tradable market can report.
type MarketStatus int

const (
	MarketStatusUnknown MarketStatus = iota
	MarketStatusTradeable
	MarketStatusClosed
	MarketStatusEditsOnly
	MarketStatusOnAuction
	MarketStatusOnAuctionNoEdits
	MarketStatusOffline
	MarketStatusSuspended
)

var marketStatusNames = map[MarketStatus]string{
	MarketStatusTradeable:        "TRADEABLE",
	MarketStatusClosed:           "CLOSED",
	MarketStatusEditsOnly:        "EDITS_ONLY",
	MarketStatusOnAuction:        "ON_AUCTION",
	MarketStatusOnAuctionNoEdits: "ON_AUCTION_NO_EDITS",
	MarketStatusOffline:          "OFFLINE",
	MarketStatusSuspended:        "SUSPENDED",
}

// ParseMarketStatus rejects any value outside the documented enum.
func ParseMarketStatus(raw string) (MarketStatus, error) {
	for status, name := range marketStatusNames {
		if name == raw {
			return status, nil
		}
	}

	return MarketStatusUnknown, fmt.Errorf("unknown market status %q", raw)
}

func (s MarketStatus) String() string {
	if name, ok := marketStatusNames[s]; ok {
		return name
	}

	return "UNKNOWN"
}

func (s MarketStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *MarketStatus) UnmarshalJSON(data []byte) error {
	raw, err := unquoteJSONString(data)
	if err != nil {
		return err
	}

	parsed, err := ParseMarketStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// PositionStatus is the closed set of states a position can report. Two
// pairs of names are accepted as aliases for the same state.
type PositionStatus int

const (
	PositionStatusUnknown PositionStatus = iota
	PositionStatusOpen
	PositionStatusAmended
	PositionStatusPartiallyClosed
	PositionStatusFullyClosed
	PositionStatusDeleted
)

var positionStatusAliases = map[string]PositionStatus{
	"OPEN":              PositionStatusOpen,
	"OPENED":            PositionStatusOpen,
	"AMENDED":           PositionStatusAmended,
	"PARTIALLY_CLOSED":  PositionStatusPartiallyClosed,
	"FULLY_CLOSED":      PositionStatusFullyClosed,
	"CLOSED":            PositionStatusFullyClosed,
	"DELETED":           PositionStatusDeleted,
}

var positionStatusNames = map[PositionStatus]string{
	PositionStatusOpen:            "OPEN",
	PositionStatusAmended:         "AMENDED",
	PositionStatusPartiallyClosed: "PARTIALLY_CLOSED",
	PositionStatusFullyClosed:     "FULLY_CLOSED",
	PositionStatusDeleted:         "DELETED",
}

// ParsePositionStatus rejects any value outside the documented enum,
// accepting OPENED as an alias for OPEN and CLOSED for FULLY_CLOSED.
func ParsePositionStatus(raw string) (PositionStatus, error) {
	if status, ok := positionStatusAliases[raw]; ok {
		return status, nil
	}

	return PositionStatusUnknown, fmt.Errorf("unknown position status %q", raw)
}

func (s PositionStatus) String() string {
	if name, ok := positionStatusNames[s]; ok {
		return name
	}

	return "UNKNOWN"
}

func (s PositionStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *PositionStatus) UnmarshalJSON(data []byte) error {
	raw, err := unquoteJSONString(data)
	if err != nil {
		return err
	}

	parsed, err := ParsePositionStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// Direction is a deal or order's buy/sell side.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionBuy
	DirectionSell
)

// ParseDirection rejects any value outside {BUY, SELL}.
func ParseDirection(raw string) (Direction, error) {
	switch raw {
	case "BUY":
		return DirectionBuy, nil
	case "SELL":
		return DirectionSell, nil
	default:
		return DirectionUnknown, fmt.Errorf("unknown direction %q", raw)
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionBuy:
		return "BUY"
	case DirectionSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	raw, err := unquoteJSONString(data)
	if err != nil {
		return err
	}

	parsed, err := ParseDirection(raw)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// WorkingOrderExpiryType is a working order's expiration mode.
type WorkingOrderExpiryType int

const (
	WorkingOrderExpiryUnknown WorkingOrderExpiryType = iota
	WorkingOrderExpiryGoodTillCancelled
	WorkingOrderExpiryGoodTillDate
)

// ParseWorkingOrderExpiryType rejects any value outside the documented
// enum.
func ParseWorkingOrderExpiryType(raw string) (WorkingOrderExpiryType, error) {
	switch raw {
	case "GOOD_TILL_CANCELLED":
		return WorkingOrderExpiryGoodTillCancelled, nil
	case "GOOD_TILL_DATE":
		return WorkingOrderExpiryGoodTillDate, nil
	default:
		return WorkingOrderExpiryUnknown, fmt.Errorf("unknown working order expiry %q", raw)
	}
}

func (e WorkingOrderExpiryType) String() string {
	switch e {
	case WorkingOrderExpiryGoodTillCancelled:
		return "GOOD_TILL_CANCELLED"
	case WorkingOrderExpiryGoodTillDate:
		return "GOOD_TILL_DATE"
	default:
		return "UNKNOWN"
	}
}

// WatchlistStatus reports whether every requested epic was accepted into
// a newly created watchlist.
type WatchlistStatus int

const (
	WatchlistStatusUnknown WatchlistStatus = iota
	WatchlistStatusSuccess
	WatchlistStatusSuccessNotAllInstrumentsAdded
)

// ParseWatchlistStatus rejects any value outside the documented enum.
func ParseWatchlistStatus(raw string) (WatchlistStatus, error) {
	switch raw {
	case "SUCCESS":
		return WatchlistStatusSuccess, nil
	case "SUCCESS_NOT_ALL_INSTRUMENTS_ADDED":
		return WatchlistStatusSuccessNotAllInstrumentsAdded, nil
	default:
		return WatchlistStatusUnknown, fmt.Errorf("unknown watchlist status %q", raw)
	}
}

func (s WatchlistStatus) String() string {
	switch s {
	case WatchlistStatusSuccess:
		return "SUCCESS"
	case WatchlistStatusSuccessNotAllInstrumentsAdded:
		return "SUCCESS_NOT_ALL_INSTRUMENTS_ADDED"
	default:
		return "UNKNOWN"
	}
}

func (s *WatchlistStatus) UnmarshalJSON(data []byte) error {
	raw, err := unquoteJSONString(data)
	if err != nil {
		return err
	}

	parsed, err := ParseWatchlistStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

func unquoteJSONString(data []byte) (string, error) {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", fmt.Errorf("expected a JSON string, got %s", data)
	}

	return string(data[1 : len(data)-1]), nil
}
