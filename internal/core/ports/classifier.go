package ports

import "context"

// MoodClassifier maps free text, such as lyrics, to a mood name.
type MoodClassifier interface {
	Name() string
	ClassifyMood(ctx context.Context, text string) (string, error)
}
