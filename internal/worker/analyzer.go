package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

var previewClient = &http.Client{Timeout: 15 * time.Second}

// analyzePreview downloads an MP3 preview and returns its RMS loudness scaled
// to 0..1.
func analyzePreview(ctx context.Context, url string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("preview request: %w", err)
	}
	// #nosec G107 -- URL is a preview URL from the provider's track object
	resp, err := previewClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("preview fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("preview fetch status %d", resp.StatusCode)
	}

	return rmsEnergy(resp.Body)
}

func rmsEnergy(r io.Reader) (float64, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return 0, fmt.Errorf("preview decode failed: %w", err)
	}

	buf := make([]byte, 4096)
	var sumSquares float64
	var count float64

	for {
		n, err := decoder.Read(buf)
		if n > 0 {
			// 16-bit little-endian stereo PCM
			for i := 0; i+1 < n; i += 2 {
				sample := int16(buf[i]) | int16(buf[i+1])<<8
				val := float64(sample)
				sumSquares += val * val
				count++
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("preview read failed: %w", err)
		}
	}

	if count == 0 {
		return 0, fmt.Errorf("preview contains no samples")
	}

	energy := math.Sqrt(sumSquares/count) / 32768.0
	return math.Max(0, math.Min(1, energy)), nil
}

// AnalyzePreviewFunc allows tests to override the analyzer implementation.
var AnalyzePreviewFunc = analyzePreview
