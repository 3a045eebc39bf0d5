package domain

import "strings"

var moodKeywords = map[string][]string{
	"happy":     {"happy", "joy", "smile", "sunshine", "bright", "love", "glad", "laugh", "good"},
	"sad":       {"sad", "cry", "tears", "alone", "lonely", "broken", "miss", "goodbye", "pain", "blue"},
	"energetic": {"run", "fire", "power", "jump", "fast", "fight", "alive", "energy", "wild", "workout"},
	"chill":     {"calm", "slow", "breeze", "quiet", "relax", "easy", "rain", "dream", "drift", "sleep"},
	"party":     {"party", "dance", "club", "night", "drink", "move", "floor", "weekend", "dj", "celebrate"},
}

// ClassifyByKeywords scores each mood by keyword hits in the text. Ties go to
// the mood listed first and texts without hits resolve to DefaultMood.
func ClassifyByKeywords(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r == '\'')
	})

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	best, bestScore := DefaultMood, 0
	for _, mood := range moodOrder {
		score := 0
		for _, kw := range moodKeywords[mood] {
			score += counts[kw]
		}
		if score > bestScore {
			best, bestScore = mood, score
		}
	}
	return best
}
