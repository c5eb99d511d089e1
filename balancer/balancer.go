// Package balancer assigns customers to the closest available Customer
// Success representative and resolves which representative ended up with
// the most customers.
package balancer

import (
	"cs-balancer/metrics"
	"cs-balancer/models"
	"math"
	"time"
)

// NoMatch is the sentinel id returned when no representative qualifies or
// no single representative holds the maximum.
const NoMatch = 0

// CustomerSuccessBalancing returns the id of the representative with the
// most customers, or NoMatch.
func CustomerSuccessBalancing(customerSuccess []models.CustomerSuccess, customers []models.Customer, away []int) int {
	return Balance(models.Input{
		CustomerSuccess: customerSuccess,
		Customers:       customers,
		Away:            away,
	}).WinnerID
}

// Balance runs the full pipeline: filter once, match and count every
// customer in input order, then resolve the maximum.
// Time: O(c * r) for c customers and r available representatives.
func Balance(input models.Input) *models.Result {
	start := time.Now()

	available := FilterAvailable(input.CustomerSuccess, input.Away)

	unmatched := 0
	for _, customer := range input.Customers {
		id := FindClosest(customer, available)
		if id == NoMatch {
			unmatched++
			continue
		}
		available = UpdateCustomerCount(id, available)
	}

	winner, tied := findMax(available)

	metrics.ObserveRun(winner, tied, len(available), len(input.Customers), unmatched, time.Since(start).Seconds())

	return &models.Result{
		WinnerID:  winner,
		Available: available,
		Unmatched: unmatched,
	}
}

// FilterAvailable returns a new slice holding the representatives whose id
// is not listed in away. Input order is kept and all is left untouched.
func FilterAvailable(all []models.CustomerSuccess, away []int) []models.CustomerSuccess {
	awaySet := make(map[int]struct{}, len(away))
	for _, id := range away {
		awaySet[id] = struct{}{}
	}

	available := make([]models.CustomerSuccess, 0, len(all))
	for _, cs := range all {
		if _, ok := awaySet[cs.ID]; ok {
			continue
		}
		available = append(available, cs)
	}
	return available
}

// FindClosest returns the id of the representative whose score is at or
// above the customer's score by the smallest margin. When several
// representatives share the smallest margin the first one in available
// wins, so the result depends on input order. Returns NoMatch when no
// representative scores at least as high as the customer.
func FindClosest(customer models.Customer, available []models.CustomerSuccess) int {
	closest := NoMatch
	var minDiff uint
	found := false

	for _, cs := range available {
		if cs.Score < customer.Score {
			continue
		}
		// exact even when the int subtraction would overflow
		diff := uint(cs.Score - customer.Score)
		if !found || diff < minDiff {
			minDiff = diff
			closest = cs.ID
			found = true
		}
	}
	return closest
}

// UpdateCustomerCount increments the count of the first representative
// with the given id and returns available for chaining. NoMatch or an
// unknown id leaves the slice unchanged.
func UpdateCustomerCount(id int, available []models.CustomerSuccess) []models.CustomerSuccess {
	if id == NoMatch {
		return available
	}
	for i := range available {
		if available[i].ID == id {
			available[i].CustomerCount++
			break
		}
	}
	return available
}

// FindMaxCustomerCount returns the id of the representative with the
// highest customer count. Representatives without customers are skipped.
// See onTie for what happens when two counts are equal.
func FindMaxCustomerCount(available []models.CustomerSuccess) int {
	id, _ := findMax(available)
	return id
}

// findMax reports the winning id and whether the scan ended on a tie.
func findMax(available []models.CustomerSuccess) (int, bool) {
	maxCount := math.MinInt
	winner := NoMatch

	for _, cs := range available {
		if cs.CustomerCount == 0 {
			continue
		}
		if cs.CustomerCount > maxCount {
			maxCount = cs.CustomerCount
			winner = cs.ID
			continue
		}
		if cs.CustomerCount == maxCount {
			id, stop := onTie(winner, cs.ID)
			if stop {
				return id, true
			}
			winner = id
		}
	}
	return winner, false
}

// onTie is the tie policy of the maximum scan. A tie with the best count
// seen so far yields NoMatch and stops the scan, even when a later
// representative would have a higher count. The tied ids are passed so
// an alternative policy can pick one of them; this one ignores both.
// TODO: product review of the early abort; continuing the scan after a
// tie only needs this function to return (NoMatch, false).
func onTie(_, _ int) (int, bool) {
	return NoMatch, true
}
