package domain

import (
	"math"
	"sort"
	"strings"
)

// DefaultMood is used when a request names no mood.
const DefaultMood = "happy"

// FeatureTargets maps provider recommendation parameters such as
// "target_energy" to their desired value.
type FeatureTargets map[string]float64

// MoodProfile is the static description of one mood.
type MoodProfile struct {
	Name        string         `json:"name"`
	Targets     FeatureTargets `json:"target_features"`
	SearchTerms string         `json:"search_terms"`
}

var moodOrder = []string{"happy", "sad", "energetic", "chill", "party"}

var moodProfiles = map[string]MoodProfile{
	"happy": {
		Name:        "happy",
		Targets:     FeatureTargets{"target_valence": 0.8, "target_energy": 0.7, "target_danceability": 0.7},
		SearchTerms: "happy upbeat positive",
	},
	"sad": {
		Name:        "sad",
		Targets:     FeatureTargets{"target_valence": 0.2, "target_energy": 0.3, "target_acousticness": 0.7},
		SearchTerms: "sad melancholy emotional",
	},
	"energetic": {
		Name:        "energetic",
		Targets:     FeatureTargets{"target_energy": 0.9, "target_danceability": 0.8},
		SearchTerms: "energetic pump up workout",
	},
	"chill": {
		Name:        "chill",
		Targets:     FeatureTargets{"target_valence": 0.5, "target_energy": 0.2, "target_acousticness": 0.8},
		SearchTerms: "chill relaxing ambient",
	},
	"party": {
		Name:        "party",
		Targets:     FeatureTargets{"target_danceability": 0.9, "target_energy": 0.8, "target_valence": 0.7},
		SearchTerms: "party dance club",
	},
}

// Moods returns every mood profile in display order.
func Moods() []MoodProfile {
	out := make([]MoodProfile, 0, len(moodOrder))
	for _, name := range moodOrder {
		out = append(out, moodProfiles[name].clone())
	}
	return out
}

// MoodNames lists the mood names in display order.
func MoodNames() []string {
	return append([]string(nil), moodOrder...)
}

// LookupMood resolves a mood name case-insensitively. An empty name resolves
// to DefaultMood.
func LookupMood(name string) (MoodProfile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultMood
	}
	p, ok := moodProfiles[key]
	if !ok {
		return MoodProfile{}, ErrInvalidMood
	}
	return p.clone(), nil
}

// IsMood reports whether name is a known mood.
func IsMood(name string) bool {
	_, ok := moodProfiles[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Keys returns the target parameter names in sorted order.
func (ft FeatureTargets) Keys() []string {
	keys := make([]string, 0, len(ft))
	for k := range ft {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TargetsFromFeatures builds recommendation targets that mirror a seed track.
func TargetsFromFeatures(f AudioFeatures) FeatureTargets {
	return FeatureTargets{
		"target_danceability":     f.Danceability,
		"target_energy":           f.Energy,
		"target_valence":          f.Valence,
		"target_acousticness":     f.Acousticness,
		"target_instrumentalness": f.Instrumentalness,
	}
}

// ClosestMood returns the mood whose targets are nearest to the features,
// measured as mean squared distance over the features each mood targets.
func ClosestMood(f AudioFeatures) string {
	values := map[string]float64{
		"target_danceability":     f.Danceability,
		"target_energy":           f.Energy,
		"target_valence":          f.Valence,
		"target_acousticness":     f.Acousticness,
		"target_instrumentalness": f.Instrumentalness,
	}

	best := DefaultMood
	bestDist := math.Inf(1)
	for _, name := range moodOrder {
		targets := moodProfiles[name].Targets
		var sum float64
		for key, want := range targets {
			d := values[key] - want
			sum += d * d
		}
		dist := sum / float64(len(targets))
		if dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}

func (p MoodProfile) clone() MoodProfile {
	targets := make(FeatureTargets, len(p.Targets))
	for k, v := range p.Targets {
		targets[k] = v
	}
	p.Targets = targets
	return p
}
