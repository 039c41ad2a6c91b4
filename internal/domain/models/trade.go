package models

// Trade is a single executed trade as delivered by the market stream.
// Timestamp is unix seconds; the source guarantees arrival order but not
// strictly increasing timestamps.
type Trade struct {
	Symbol    string
	Timestamp int64
	Price     float64
	Quantity  float64
}

// Notional returns the traded dollar volume (price * quantity).
func (t *Trade) Notional() float64 {
	return t.Price * t.Quantity
}
