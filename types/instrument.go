package types

import "strings"

// InstrumentKind discriminates the tradable entity a series describes.
type InstrumentKind string

const (
	KindStock  InstrumentKind = "stock"
	KindCrypto InstrumentKind = "crypto"
	KindForex  InstrumentKind = "forex"
	KindFund   InstrumentKind = "fund"
	KindIndex  InstrumentKind = "index"
	KindETF    InstrumentKind = "etf"
	KindBond   InstrumentKind = "bond"
)

// Instrument is an immutable tagged value identifying one tradable entity.
// Construct it with the kind helpers below; the zero value is invalid.
type Instrument struct {
	Kind   InstrumentKind
	Symbol string
	// Base and Quote are set for crypto and forex pairs only.
	Base  string
	Quote string
}

func Stock(symbol string) Instrument { return Instrument{Kind: KindStock, Symbol: symbol} }
func Fund(symbol string) Instrument  { return Instrument{Kind: KindFund, Symbol: symbol} }
func Index(symbol string) Instrument { return Instrument{Kind: KindIndex, Symbol: symbol} }
func ETF(symbol string) Instrument   { return Instrument{Kind: KindETF, Symbol: symbol} }
func Bond(symbol string) Instrument  { return Instrument{Kind: KindBond, Symbol: symbol} }

// Crypto identifies a crypto pair, e.g. Crypto("BTC", "USD").
func Crypto(base, quote string) Instrument {
	return Instrument{Kind: KindCrypto, Base: base, Quote: quote}
}

// Forex identifies a currency pair, e.g. Forex("USD", "EUR").
func Forex(base, quote string) Instrument {
	return Instrument{Kind: KindForex, Base: base, Quote: quote}
}

// RemoteSymbol renders the instrument in the remote service's ticker
// vocabulary: crypto pairs as "BTC-USD", forex pairs as "USDEUR=X", everything
// else as the symbol the caller supplied.
func (in Instrument) RemoteSymbol() string {
	switch in.Kind {
	case KindCrypto:
		return strings.ToUpper(in.Base) + "-" + strings.ToUpper(in.Quote)
	case KindForex:
		return strings.ToUpper(in.Base) + strings.ToUpper(in.Quote) + "=X"
	default:
		return in.Symbol
	}
}

// Validate rejects instruments whose identifying fields are missing.
func (in Instrument) Validate() error {
	switch in.Kind {
	case KindCrypto, KindForex:
		if in.Base == "" || in.Quote == "" {
			return NewValidationError(string(in.Kind) + " instrument requires base and quote")
		}
	case KindStock, KindFund, KindIndex, KindETF, KindBond:
		if in.Symbol == "" {
			return NewValidationError(string(in.Kind) + " instrument requires a symbol")
		}
	default:
		return NewValidationError("unknown instrument kind: " + string(in.Kind))
	}
	return nil
}
