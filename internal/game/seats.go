package game

import "slices"

// NextSeat returns the player seated clockwise after from. The same rotation drives
// bidding order, trick leads and dealer succession.
func NextSeat(seats []string, from string) string {
	i := slices.Index(seats, from)
	if i < 0 || len(seats) == 0 {
		return ""
	}
	return seats[(i+1)%len(seats)]
}

// SeatsFrom returns every seat once, in clockwise order, starting at first.
func SeatsFrom(seats []string, first string) []string {
	i := slices.Index(seats, first)
	if i < 0 {
		return nil
	}
	order := make([]string, 0, len(seats))
	order = append(order, seats[i:]...)
	order = append(order, seats[:i]...)
	return order
}
