package judgment

import "slices"

// Standings names the winners of a finished game. Ties share a title.
type Standings struct {
	ScoreWinners []string `json:"score_winners"`
	GuessWinners []string `json:"guess_winners"`
	MegaWinners  []string `json:"mega_winners"`
}

// Tally picks everyone tied for the top score, everyone tied for the most correct bids,
// and the players in both groups. Order follows seat order.
func Tally(players []*Player) Standings {
	standings := Standings{
		ScoreWinners: []string{},
		GuessWinners: []string{},
		MegaWinners:  []string{},
	}
	if len(players) == 0 {
		return standings
	}

	bestScore, bestGuess := players[0].TotalScore, players[0].CorrectBids
	for _, p := range players[1:] {
		bestScore = max(bestScore, p.TotalScore)
		bestGuess = max(bestGuess, p.CorrectBids)
	}

	for _, p := range players {
		if p.TotalScore == bestScore {
			standings.ScoreWinners = append(standings.ScoreWinners, p.ID)
		}
		if p.CorrectBids == bestGuess {
			standings.GuessWinners = append(standings.GuessWinners, p.ID)
		}
	}
	for _, id := range standings.ScoreWinners {
		if slices.Contains(standings.GuessWinners, id) {
			standings.MegaWinners = append(standings.MegaWinners, id)
		}
	}
	return standings
}
