// Package clipboard places text on the system clipboard.
package clipboard

import (
	"context"
	"fmt"

	sysclip "github.com/atotto/clipboard"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Writer places text on a clipboard
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// System writes to the OS clipboard through xclip/xsel/wl-copy, pbcopy or
// the Windows API, whichever atotto/clipboard finds.
type System struct {
	write func(string) error
}

// New returns the system clipboard, or a Noop writer when the platform
// has no clipboard utility or enabled is false.
func New(enabled bool) Writer {
	if !enabled || sysclip.Unsupported {
		logger.Info("System clipboard unavailable, copy requests will only be logged", logger.LoggerInfo{
			ContextFunction: constant.CtxClipboard,
		})
		return Noop{}
	}
	return &System{write: sysclip.WriteAll}
}

// WriteText implements Writer
func (s *System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(text); err != nil {
		return fmt.Errorf("writing system clipboard: %w", err)
	}
	logger.CtxDebug(ctx, "Text written to clipboard", logger.LoggerInfo{
		ContextFunction: constant.CtxClipboard,
		Data: map[string]interface{}{
			constant.DataTextLength: len(text),
		},
	})
	return nil
}

// Noop discards text
type Noop struct{}

// WriteText implements Writer
func (Noop) WriteText(ctx context.Context, text string) error {
	logger.CtxDebug(ctx, "Clipboard write skipped", logger.LoggerInfo{
		ContextFunction: constant.CtxClipboard,
		Data: map[string]interface{}{
			constant.DataTextLength: len(text),
		},
	})
	return nil
}
