package model

// Candidate is one (display name, ticker) pair returned by a catalog query.
// The same fund may appear under different display names across catalogs;
// no cross-catalog uniqueness is assumed.
type Candidate struct {
	DisplayName string
	Ticker      string
	SourceID    string
}

// Scheme is one row of the bulk registry master list.
type Scheme struct {
	Code      string
	Name      string
	FundHouse string
}
