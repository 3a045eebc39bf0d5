package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// SourceKeywords names the built-in keyword classifier.
const SourceKeywords = "keywords"

// Classification is a mood and the classifier that produced it.
type Classification struct {
	Mood   string `json:"mood"`
	Source string `json:"source"`
}

// Moods returns the static mood table.
func (o *Orchestrator) Moods() []domain.MoodProfile {
	return domain.Moods()
}

// ClassifyMood maps text to a mood. The configured model classifier is asked
// first; keyword scoring answers when it fails or names an unknown mood.
func (o *Orchestrator) ClassifyMood(ctx context.Context, text string) (Classification, error) {
	if strings.TrimSpace(text) == "" {
		return Classification{}, fmt.Errorf("service: classify mood: empty text: %w", domain.ErrValidation)
	}

	if o.classifier != nil {
		mood, err := o.classifier.ClassifyMood(ctx, text)
		mood = strings.ToLower(strings.TrimSpace(mood))
		switch {
		case err != nil:
			o.log.Warn("mood classifier failed, using keywords",
				zap.String("classifier", o.classifier.Name()), zap.Error(err))
		case !domain.IsMood(mood):
			o.log.Warn("mood classifier returned unknown mood, using keywords",
				zap.String("classifier", o.classifier.Name()), zap.String("mood", mood))
		default:
			return Classification{Mood: mood, Source: o.classifier.Name()}, nil
		}
	}

	return Classification{Mood: domain.ClassifyByKeywords(text), Source: SourceKeywords}, nil
}
