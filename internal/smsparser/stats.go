package smsparser

// Stats is a reduction over a sequence of parsed transactions: amounts
// summed per type bucket, plus the record count. The reduction is
// associative, so partial Stats combine in any order.
type Stats struct {
	TotalIn       float64 `json:"totalIn"`
	TotalOut      float64 `json:"totalOut"`
	TotalCashback float64 `json:"totalCashback"`
	Count         int     `json:"count"`
}

// Add folds one transaction into the stats. Records without an amount are
// counted but contribute nothing to the sums.
func (s *Stats) Add(tx *ParsedTransaction) {
	s.Count++
	if tx.Amount == nil {
		return
	}
	switch tx.Type {
	case TypeCredit:
		s.TotalIn += *tx.Amount
	case TypeDebit:
		s.TotalOut += *tx.Amount
	case TypeCashback:
		s.TotalCashback += *tx.Amount
	}
}

// Combine merges another partial aggregate into s.
func (s *Stats) Combine(other Stats) {
	s.TotalIn += other.TotalIn
	s.TotalOut += other.TotalOut
	s.TotalCashback += other.TotalCashback
	s.Count += other.Count
}

// ComputeStats reduces a transaction sequence to its aggregate.
func ComputeStats(txs []*ParsedTransaction) Stats {
	var s Stats
	for _, tx := range txs {
		s.Add(tx)
	}
	return s
}

// FilterKind selects a view over a transaction list.
type FilterKind string

const (
	FilterAll     FilterKind = "All"
	FilterDebits  FilterKind = "Debits"
	FilterCredits FilterKind = "Credits"
	FilterOTPs    FilterKind = "OTPs"
)

// Filter returns the transactions matching the view. Credits include
// cashback; an unknown kind returns the input unchanged.
func Filter(txs []*ParsedTransaction, kind FilterKind) []*ParsedTransaction {
	switch kind {
	case FilterDebits:
		return filterBy(txs, func(tx *ParsedTransaction) bool {
			return tx.Type == TypeDebit
		})
	case FilterCredits:
		return filterBy(txs, func(tx *ParsedTransaction) bool {
			return tx.Type == TypeCredit || tx.Type == TypeCashback
		})
	case FilterOTPs:
		return filterBy(txs, func(tx *ParsedTransaction) bool {
			return tx.IsOTP
		})
	default:
		return txs
	}
}

func filterBy(txs []*ParsedTransaction, keep func(*ParsedTransaction) bool) []*ParsedTransaction {
	out := make([]*ParsedTransaction, 0, len(txs))
	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}
