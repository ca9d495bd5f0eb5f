package narrative

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Manager chains providers: primary, optional fallback, then the template
// generator. It always yields some non-empty summary.
type Manager struct {
	primary  Generator
	fallback Generator
	template *TemplateGenerator
	logger   *zap.Logger
}

func NewManager(primary, fallback Generator, logger *zap.Logger) *Manager {
	return &Manager{
		primary:  primary,
		fallback: fallback,
		template: NewTemplateGenerator(),
		logger:   logger,
	}
}

// GenerateSummary never returns an error and never returns an empty string.
func (m *Manager) GenerateSummary(ctx context.Context, input LayerInput) string {
	if m.primary != nil {
		if text, err := m.primary.GenerateSummary(ctx, input); err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
		} else {
			m.logger.Warn("Primary narrative provider failed", zap.Error(err))
		}
	}

	if m.fallback != nil {
		if text, err := m.fallback.GenerateSummary(ctx, input); err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
		} else {
			m.logger.Warn("Fallback narrative provider failed", zap.Error(err))
		}
	}

	text, _ := m.template.GenerateSummary(ctx, input)
	return text
}
