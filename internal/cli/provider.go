package cli

import (
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/ui"
)

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the current
// terminal theme. The orchestration and app packages share it.
type CLIColorProvider struct{}

// Yellow returns the warning color.
func (c CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Red returns the error color.
func (c CLIColorProvider) Red() string { return ui.ColorRed() }

// Reset returns the reset code.
func (c CLIColorProvider) Reset() string { return ui.ColorReset() }
