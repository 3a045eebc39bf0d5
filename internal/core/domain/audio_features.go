package domain

// RawAudioFeatures is the provider's audio-features object as decoded JSON.
// Fields the relay does not model (key, mode, loudness, ...) are kept.
type RawAudioFeatures map[string]any

// Features extracts the typed descriptors.
func (f RawAudioFeatures) Features() AudioFeatures {
	return AudioFeatures{
		Danceability:     floatField(f, "danceability"),
		Energy:           floatField(f, "energy"),
		Valence:          floatField(f, "valence"),
		Tempo:            floatField(f, "tempo"),
		Instrumentalness: floatField(f, "instrumentalness"),
		Acousticness:     floatField(f, "acousticness"),
	}
}

func floatField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
