package domain

// RecommendationRequest carries the seeds and tunable targets for a provider
// recommendations call.
type RecommendationRequest struct {
	SeedGenres  []string
	SeedTracks  []string
	SeedArtists []string
	Targets     FeatureTargets
	Limit       int
}

// User is the subset of the provider's user profile the relay needs.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
