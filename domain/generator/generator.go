package generator

import (
	"context"
	"errors"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/clipboard"
	"github.com/prasetyowira/qrgen/infrastructure/export"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
)

// ErrSuperseded is returned by Generate when a newer Generate call is
// still encoding or has already been applied. Its result is discarded.
var ErrSuperseded = errors.New("generation superseded by a newer request")

// Encoder turns text into a QR code artifact
type Encoder interface {
	Encode(ctx context.Context, text string, opts qrcode.Options) (*qrcode.Artifact, error)
}

// UIState is everything a rendering surface needs to draw one session
type UIState struct {
	SourceText          string
	Foreground          string
	Artifact            *qrcode.Artifact
	NotificationVisible bool
	Theme               ThemeMode
}

// Controller owns the UI state of one session and runs its actions.
// State changes are serialised by mu; encoding runs without holding it.
type Controller struct {
	encoder   Encoder
	clipboard clipboard.Writer
	clock     clock.Clock

	mu        sync.Mutex
	state     UIState
	issued    uint64
	applied   uint64
	pending   map[uint64]struct{}
	hideTimer *clock.Timer
	noticeGen uint64
}

// Option configures a Controller
type Option func(*Controller)

// WithClock sets the clock used for the notification window
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) {
		ctrl.clock = c
	}
}

// NewController creates a controller with an empty source text, the default
// foreground colour and the light theme.
func NewController(encoder Encoder, clip clipboard.Writer, opts ...Option) *Controller {
	ctrl := &Controller{
		encoder:   encoder,
		clipboard: clip,
		clock:     clock.New(),
		pending:   make(map[uint64]struct{}),
		state: UIState{
			Foreground: constant.DefaultForeground,
			Theme:      ThemeLight,
		},
	}
	for _, opt := range opts {
		opt(ctrl)
	}

	logger.Debug("Creating generator controller", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "generator",
		},
	})

	return ctrl
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Caption describes the text encoded by the displayed artifact, which may
// differ from the current source text.
func (c *Controller) Caption() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CaptionFor(c.state.Artifact)
}

// CaptionFor returns "QR for: <text>" for artifact, or "" when nil
func CaptionFor(artifact *qrcode.Artifact) string {
	if artifact == nil {
		return ""
	}
	return constant.CaptionPrefix + artifact.Text
}

// SetSourceText replaces the text to encode. The current artifact is kept.
func (c *Controller) SetSourceText(ctx context.Context, value string) {
	c.mu.Lock()
	c.state.SourceText = value
	c.mu.Unlock()

	logger.CtxDebug(ctx, "Source text updated", logger.LoggerInfo{
		ContextFunction: constant.CtxSetSourceText,
		Data: map[string]interface{}{
			constant.DataTextLength: len(value),
		},
	})
}

// SetForegroundColor replaces the module colour used by the next Generate
func (c *Controller) SetForegroundColor(ctx context.Context, value string) {
	c.mu.Lock()
	c.state.Foreground = value
	c.mu.Unlock()

	logger.CtxDebug(ctx, "Foreground colour updated", logger.LoggerInfo{
		ContextFunction: constant.CtxSetForeground,
		Data: map[string]interface{}{
			constant.DataForeground: value,
		},
	})
}

// Generate encodes the current source text with the current foreground
// colour. It does nothing when the source text is empty. On failure the
// error is logged and returned and the previous artifact stays in place.
func (c *Controller) Generate(ctx context.Context) error {
	c.mu.Lock()
	text, fg := c.state.SourceText, c.state.Foreground
	if text == "" {
		c.mu.Unlock()
		logger.CtxDebug(ctx, constant.MsgGenerateIgnoredEmpty, logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
		})
		return nil
	}
	c.issued++
	seq := c.issued
	c.pending[seq] = struct{}{}
	c.mu.Unlock()

	opts := qrcode.DefaultOptions(fg)
	logger.CtxDebug(ctx, "Generating QR code", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataSeq:        seq,
			constant.DataTextLength: len(text),
			constant.DataForeground: opts.Foreground,
			constant.DataBackground: opts.Background,
			constant.DataDimension:  opts.PixelDimension,
			constant.DataMargin:     opts.MarginModules,
		},
	})

	artifact, err := c.encoder.Encode(ctx, text, opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, seq)

	if err != nil {
		logger.CtxError(ctx, "Error generating QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEncodeFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataSeq:        seq,
				constant.DataForeground: fg,
			},
		})
		return err
	}

	if c.isStale(seq) {
		logger.CtxWarn(ctx, "Discarding stale QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeStaleResult,
				Message: ErrSuperseded.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataSeq:       seq,
				constant.DataLatestSeq: c.issued,
			},
		})
		return ErrSuperseded
	}

	c.state.Artifact = artifact
	c.applied = seq

	logger.CtxInfo(ctx, "QR code generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataSeq:     seq,
			constant.DataModules: artifact.Modules,
			constant.DataSize:    len(artifact.PNG),
		},
	})
	return nil
}

// isStale reports whether the completion of request seq must be dropped:
// a newer result is already displayed, or a newer request is still
// encoding and will replace it. Callers hold mu.
func (c *Controller) isStale(seq uint64) bool {
	if seq < c.applied {
		return true
	}
	for pending := range c.pending {
		if pending > seq {
			return true
		}
	}
	return false
}

// Download hands the current artifact to saver as qrcode.png. It reports
// false without calling saver when nothing has been generated.
func (c *Controller) Download(ctx context.Context, saver export.Saver) (bool, error) {
	c.mu.Lock()
	artifact := c.state.Artifact
	c.mu.Unlock()

	if artifact == nil {
		logger.CtxDebug(ctx, constant.MsgDownloadIgnoredNoCode, logger.LoggerInfo{
			ContextFunction: constant.CtxDownload,
		})
		return false, nil
	}

	if err := saver.Save(ctx, constant.ArtifactFileName, artifact); err != nil {
		logger.CtxError(ctx, "Error saving QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxDownload,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeSaveFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeExport,
			},
			Data: map[string]interface{}{
				constant.DataFileName: constant.ArtifactFileName,
			},
		})
		return true, err
	}
	return true, nil
}

// CopyLink copies the source text to the clipboard in the background and
// shows the copied notification for NotificationTTL, restarting the window
// if it is already showing. It reports false when the source text is empty.
func (c *Controller) CopyLink(ctx context.Context) bool {
	c.mu.Lock()
	text := c.state.SourceText
	if text == "" {
		c.mu.Unlock()
		logger.CtxDebug(ctx, constant.MsgCopyIgnoredEmpty, logger.LoggerInfo{
			ContextFunction: constant.CtxCopyLink,
		})
		return false
	}

	c.state.NotificationVisible = true
	if c.hideTimer != nil {
		c.hideTimer.Stop()
	}
	c.noticeGen++
	gen := c.noticeGen
	c.hideTimer = c.clock.AfterFunc(constant.NotificationTTL, func() {
		c.hideNotification(gen)
	})
	c.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	go func() {
		if err := c.clipboard.WriteText(bg, text); err != nil {
			logger.CtxWarn(bg, "Error copying link to clipboard", logger.LoggerInfo{
				ContextFunction: constant.CtxCopyLink,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeClipboardFailure,
					Message: err.Error(),
					Type:    constant.ErrTypeClipboard,
				},
			})
		}
	}()

	logger.CtxInfo(ctx, constant.NotificationText, logger.LoggerInfo{
		ContextFunction: constant.CtxCopyLink,
		Data: map[string]interface{}{
			constant.DataTextLength: len(text),
		},
	})
	return true
}

// hideNotification clears the notification unless a later CopyLink has
// opened a new window since gen was scheduled.
func (c *Controller) hideNotification(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.noticeGen {
		return
	}
	c.state.NotificationVisible = false
	c.hideTimer = nil

	logger.Debug("Copied notification hidden", logger.LoggerInfo{
		ContextFunction: constant.CtxHideNotice,
	})
}

// ToggleTheme flips between light and dark and returns the new mode
func (c *Controller) ToggleTheme(ctx context.Context) ThemeMode {
	c.mu.Lock()
	c.state.Theme = c.state.Theme.Toggle()
	mode := c.state.Theme
	c.mu.Unlock()

	logger.CtxDebug(ctx, "Theme toggled", logger.LoggerInfo{
		ContextFunction: constant.CtxToggleTheme,
		Data: map[string]interface{}{
			constant.DataTheme: string(mode),
		},
	})
	return mode
}

// Close cancels a pending notification timer
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	c.noticeGen++
}
