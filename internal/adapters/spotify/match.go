package spotify

import (
	"strings"
	"unicode"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

const (
	minTitleSimilarity   = 0.65
	minArtistSimilarity  = 0.55
	minOverallSimilarity = 0.70
	matchCandidates      = 5
)

var noiseTokens = map[string]struct{}{
	"clean":      {},
	"deluxe":     {},
	"edition":    {},
	"edit":       {},
	"explicit":   {},
	"feat":       {},
	"featuring":  {},
	"ft":         {},
	"live":       {},
	"mix":        {},
	"mono":       {},
	"radio":      {},
	"remaster":   {},
	"remastered": {},
	"stereo":     {},
	"version":    {},
}

// bestMatch returns the index of the highest scoring confident candidate, or -1.
func bestMatch(title, artist string, candidates []domain.RawTrack) (int, float64) {
	limit := len(candidates)
	if limit > matchCandidates {
		limit = matchCandidates
	}

	bestIndex := -1
	bestScore := 0.0
	for i := 0; i < limit; i++ {
		score, ok := trackMatchScore(title, artist, candidates[i])
		if ok && score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	return bestIndex, bestScore
}

func trackMatchScore(requestTitle string, requestArtist string, candidate domain.RawTrack) (float64, bool) {
	normalizedTitle := normalizeSearchInput(requestTitle)
	normalizedArtist := normalizeSearchInput(requestArtist)
	candidateTitle := normalizeSearchInput(candidate.Name())
	candidateArtist := normalizeSearchInput(joinArtistNames(candidate))

	if normalizedTitle == "" || normalizedArtist == "" || candidateTitle == "" || candidateArtist == "" {
		return 0, false
	}

	titleSim := similarity(normalizedTitle, candidateTitle)
	artistSim := similarity(normalizedArtist, candidateArtist)
	score := 0.7*titleSim + 0.3*artistSim

	if titleSim < minTitleSimilarity || artistSim < minArtistSimilarity || score < minOverallSimilarity {
		return score, false
	}

	return score, true
}

func joinArtistNames(track domain.RawTrack) string {
	artists := track.Artists()
	parts := make([]string, 0, len(artists))
	for _, artist := range artists {
		if name, ok := artist["name"].(string); ok && name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

func normalizeSearchInput(input string) string {
	if input == "" {
		return ""
	}

	lower := strings.ToLower(input)
	filtered := stripBracketedSegments(lower)
	tokens := strings.Fields(cleanSeparators(filtered))

	cleaned := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, drop := noiseTokens[token]; drop {
			continue
		}
		cleaned = append(cleaned, token)
	}

	return strings.Join(cleaned, " ")
}

func stripBracketedSegments(input string) string {
	var out strings.Builder
	depth := 0
	for _, r := range input {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				out.WriteRune(r)
			}
		}
	}

	return out.String()
}

func cleanSeparators(input string) string {
	var out strings.Builder
	lastSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			out.WriteRune(' ')
			lastSpace = true
		}
	}

	return out.String()
}

func fallbackIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func similarity(a string, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

func levenshteinDistance(a string, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		copy(prev, curr)
	}

	return prev[len(rb)]
}
