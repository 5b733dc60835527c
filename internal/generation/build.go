package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/elimufine/elimu-backend/internal/config"
	"github.com/elimufine/elimu-backend/internal/metrics"
)

// DefaultGenerationTimeout bounds Gemini calls when no positive timeout is configured.
const DefaultGenerationTimeout = 30 * time.Second

// FromConfig builds the configured backend with its decorators. The Gemini
// backend is retried innermost and bounded by the timeout around all attempts.
// The fixture is bounded only by its own delays. m may be nil.
func FromConfig(ctx context.Context, cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) (Generator, error) {
	var g Generator

	switch cfg.GeneratorBackend {
	case config.BackendMock:
		g = NewFixture(cfg.MockLessonDelay, cfg.MockCertificateDelay, cfg.VisualAidURL)
	case config.BackendGemini:
		gem, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.VisualAidURL)
		if err != nil {
			return nil, err
		}
		timeout := cfg.GenerationTimeout
		if timeout <= 0 {
			log.Warn().Dur("configured", timeout).Dur("timeout", DefaultGenerationTimeout).
				Msg("Gemini requires a positive generation timeout, using default")
			timeout = DefaultGenerationTimeout
		}
		g = WithTimeout(WithRetry(gem, cfg.GenerationMaxAttempts), timeout)
	default:
		return nil, fmt.Errorf("unknown generator backend %q", cfg.GeneratorBackend)
	}

	log.Info().
		Str("backend", cfg.GeneratorBackend).
		Int("max_attempts", cfg.GenerationMaxAttempts).
		Msg("Generator ready")

	return Instrumented(g, log, m), nil
}
