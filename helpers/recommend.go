package helpers

import (
	"sort"

	"github.com/Zero-for-One/TatiBot/models"
)

// GameScore pairs an enabled game with its tallied score
type GameScore struct {
	Key   string
	Game  models.Game
	Score int
}

// Recommendation is the result of tallying a guild's votes.
type Recommendation struct {
	AvailablePlayers int
	Voters           []string

	// every enabled game with its score, best first
	Scores []GameScore

	// the subset whose player range fits the available count, best first
	Compatible []GameScore

	// best compatible game, nil when none fits
	Winner *GameScore
}

// Recommend tallies the guild's votes and picks the best game for the
// available player count. Users flagged unavailable contribute neither
// to the count nor to the scores. Unrated games count as 0 and still
// win when they are the only compatible option. Equal scores are broken
// by ascending game id so the outcome is stable.
func Recommend(games map[string]models.Game, votes models.VoteMap) Recommendation {
	var rec Recommendation

	available := make(models.VoteMap, len(votes))
	for userID, entry := range votes {
		if entry.Unavailable {
			continue
		}
		available[userID] = entry
		rec.Voters = append(rec.Voters, entry.Username)
	}
	sort.Strings(rec.Voters)
	rec.AvailablePlayers = len(available)

	scores := make(map[string]int, len(games))
	for key := range games {
		scores[key] = 0
	}
	for _, entry := range available {
		for key := range games {
			scores[key] += entry.Votes[key]
		}
	}

	for key, game := range games {
		rec.Scores = append(rec.Scores, GameScore{Key: key, Game: game, Score: scores[key]})
	}
	sortScores(rec.Scores)

	for _, gs := range rec.Scores {
		if gs.Game.FitsPlayerCount(rec.AvailablePlayers) {
			rec.Compatible = append(rec.Compatible, gs)
		}
	}

	if len(rec.Compatible) > 0 {
		winner := rec.Compatible[0]
		rec.Winner = &winner
	}

	return rec
}

func sortScores(scores []GameScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Game.ID < scores[j].Game.ID
	})
}
