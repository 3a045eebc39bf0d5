package domain

import "strings"

// SafeDefaultGenres is used when the provider cannot list its genre seeds.
var SafeDefaultGenres = []string{"pop", "rock", "jazz"}

var preferredSeeds = []string{"pop", "rock", "electronic", "hip-hop", "indie"}

var fallbackGenres = []string{
	"acoustic", "afrobeat", "alt-rock", "alternative", "ambient", "anime", "black-metal",
	"bluegrass", "blues", "bossanova", "brazil", "breakbeat", "british", "cantopop",
	"chicago-house", "children", "chill", "classical", "club", "comedy", "country",
	"dance", "dancehall", "death-metal", "deep-house", "detroit-techno", "disco", "disney",
	"drum-and-bass", "dub", "dubstep", "edm", "electro", "electronic", "emo", "folk",
	"forro", "french", "funk", "garage", "german", "gospel", "goth", "grindcore", "groove",
	"grunge", "guitar", "happy", "hard-rock", "hardcore", "hardstyle", "heavy-metal",
	"hip-hop", "holidays", "honky-tonk", "house", "idm", "indian", "indie", "indie-pop",
	"industrial", "iranian", "j-dance", "j-idol", "j-pop", "j-rock", "jazz", "k-pop",
	"kids", "latin", "latino", "malay", "mandopop", "metal", "metal-misc", "metalcore",
	"minimal-techno", "movies", "mpb", "new-age", "new-release", "opera", "pagode",
	"party", "philippines-opm", "piano", "pop", "pop-film", "post-dubstep", "power-pop",
	"progressive-house", "psych-rock", "punk", "punk-rock", "r-n-b", "rainy-day", "reggae",
	"reggaeton", "road-trip", "rock", "rock-n-roll", "rockabilly", "romance", "sad",
	"salsa", "samba", "sertanejo", "show-tunes", "singer-songwriter", "ska", "sleep",
	"songwriter", "soul", "soundtracks", "spanish", "study", "summer", "swedish", "synth-pop",
	"tango", "techno", "trance", "trip-hop", "turkish", "work-out", "world-music",
}

// FallbackGenres returns a copy of the static genre seed list.
func FallbackGenres() []string {
	return append([]string(nil), fallbackGenres...)
}

// SeedGenres picks exactly one seed genre: the requested genre when the
// provider offers it, otherwise the first offered preferred default, otherwise
// the first offered genre, otherwise "pop".
func SeedGenres(requested string, available []string) []string {
	offered := make(map[string]struct{}, len(available))
	for _, g := range available {
		offered[g] = struct{}{}
	}

	if req := strings.ToLower(strings.TrimSpace(requested)); req != "" {
		if _, ok := offered[req]; ok {
			return []string{req}
		}
	}

	for _, g := range preferredSeeds {
		if _, ok := offered[g]; ok {
			return []string{g}
		}
	}

	if len(available) > 0 {
		return []string{available[0]}
	}
	return []string{"pop"}
}
