package models

// CustomerSuccess represents a Customer Success representative that
// customers can be assigned to.
type CustomerSuccess struct {
	// ID must be positive; 0 is reserved as the "no match" sentinel.
	ID    int `validate:"gt=0"`
	Score int `validate:"gte=0"`
	// CustomerCount is the number of customers assigned during one run.
	CustomerCount int
}

// Customer is a read-only customer record to be matched.
type Customer struct {
	ID    int
	Score int `validate:"gte=0"`
}

// Input holds everything needed for a single balancing run.
type Input struct {
	CustomerSuccess []CustomerSuccess
	Customers       []Customer
	// Away lists ids of representatives excluded from matching
	Away []int
}

// Result is the outcome of a balancing run.
type Result struct {
	// WinnerID is the representative with the most customers, or 0 when
	// nobody was assigned or the maximum was tied.
	WinnerID int
	// Available is the final working pool with accumulated counts
	Available []CustomerSuccess
	// Unmatched counts customers no available representative could serve
	Unmatched int
}
