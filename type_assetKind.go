package nivesh

import "fmt"

// AssetKind identifies the class of an instrument. It decides which quote
// chain resolves the latest price and which currency the instrument trades in.
type AssetKind int

const (
	// MutualFund is an Indian mutual fund priced by its published NAV.
	MutualFund AssetKind = iota
	// IndianEquity is a stock traded on an Indian exchange.
	IndianEquity
	// AusEquity is a stock traded on an Australian exchange.
	AusEquity
	// UnknownKind is any kind the engine does not recognize. It never resolves a price.
	UnknownKind
)

func (k AssetKind) String() string {
	switch k {
	case MutualFund:
		return "mutual_fund"
	case IndianEquity:
		return "indian_equity"
	case AusEquity:
		return "aus_equity"
	default:
		return "unknown"
	}
}

// Label returns the human-readable group heading for the kind.
func (k AssetKind) Label() string {
	switch k {
	case MutualFund:
		return "Mutual Funds"
	case IndianEquity:
		return "Indian Equity"
	case AusEquity:
		return "Australian Equity"
	default:
		return "Unknown"
	}
}

// Currency returns the ISO 4217 code of the currency the kind trades in.
func (k AssetKind) Currency() string {
	switch k {
	case AusEquity:
		return "AUD"
	default:
		return "INR"
	}
}

// ParseAssetKind parses a ledger kind column value. Unrecognized values map
// to UnknownKind without error; the price oracle rejects them later, so a
// bad kind degrades to a missing price rather than a failed parse.
func ParseAssetKind(s string) AssetKind {
	switch s {
	case "mutual_fund":
		return MutualFund
	case "indian_equity":
		return IndianEquity
	case "aus_equity":
		return AusEquity
	default:
		return UnknownKind
	}
}

// Side is the direction of a transaction.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses a ledger side column value. The empty string defaults to Buy.
func ParseSide(s string) (Side, error) {
	switch s {
	case "", "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown transaction side: %q", s)
	}
}
