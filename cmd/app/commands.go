package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/clipboard"
	"github.com/prasetyowira/qrgen/infrastructure/export"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
)

type generateOptions struct {
	text      string
	color     string
	outDir    string
	preview   bool
	copy      bool
	clipboard bool
}

// runGenerate drives a single controller through the same actions the UI
// offers: set text and colour, generate, download, and optionally copy.
func runGenerate(ctx context.Context, out io.Writer, opts generateOptions) error {
	if ctx == nil {
		ctx = appLogger.NewRequestContext()
	}
	ctx = appLogger.WithRequestID(ctx, uuid.New().String())

	var clip clipboard.Writer = clipboard.Noop{}
	if opts.copy {
		clip = clipboard.New(opts.clipboard)
	}

	encoder := qrcode.NewGenerator()
	ctrl := generator.NewController(encoder, clip)
	defer ctrl.Close()

	ctrl.SetSourceText(ctx, opts.text)
	ctrl.SetForegroundColor(ctx, opts.color)
	if err := ctrl.Generate(ctx); err != nil {
		return err
	}
	if ctrl.Snapshot().Artifact == nil {
		appLogger.CtxWarn(ctx, "Nothing to generate", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCommandGenerate,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeEmptySourceText,
				Message: constant.ErrEmptySourceText,
				Type:    constant.ErrTypeValidation,
			},
		})
		return errors.New(constant.ErrEmptySourceText)
	}

	saver := export.NewDirSaver(opts.outDir)
	if _, err := ctrl.Download(ctx, saver); err != nil {
		return err
	}

	fmt.Fprintln(out, ctrl.Caption())
	fmt.Fprintln(out, saver.Path(constant.ArtifactFileName))

	if opts.preview {
		encoder.Preview(out, opts.text)
	}

	if opts.copy && ctrl.CopyLink(ctx) {
		fmt.Fprintln(out, constant.NotificationText)
		waitNotification(ctx, ctrl)
	}
	return nil
}

// waitNotification blocks until the copied notification closes, which also
// gives the background clipboard write time to finish before exit.
func waitNotification(ctx context.Context, ctrl *generator.Controller) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for ctrl.Snapshot().NotificationVisible {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runDecode(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := qrcode.NewGenerator().Decode(data)
	if err != nil {
		appLogger.Warn("Error decoding QR code", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCommandDecode,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeQRDecode,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataPath: path,
			},
		})
		return err
	}

	fmt.Fprintln(out, text)
	return nil
}
