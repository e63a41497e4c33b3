// Package export saves generated QR codes as files.
package export

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
)

// Saver triggers a save of artifact under the given file name
type Saver interface {
	Save(ctx context.Context, name string, artifact *qrcode.Artifact) error
}

// DirSaver writes artifacts into a directory on disk
type DirSaver struct {
	dir string
}

// NewDirSaver creates a saver rooted at dir
func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{dir: dir}
}

// Path returns where a file called name would be written
func (s *DirSaver) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save implements Saver
func (s *DirSaver) Save(ctx context.Context, name string, artifact *qrcode.Artifact) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", s.dir, err)
	}

	path := s.Path(name)
	if err := os.WriteFile(path, artifact.PNG, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.CtxInfo(ctx, "QR code saved", logger.LoggerInfo{
		ContextFunction: constant.CtxExport,
		Data: map[string]interface{}{
			constant.DataPath: path,
			constant.DataSize: len(artifact.PNG),
		},
	})
	return nil
}

// ResponseSaver streams artifacts to a browser as a file download
type ResponseSaver struct {
	w http.ResponseWriter
}

// NewResponseSaver wraps w
func NewResponseSaver(w http.ResponseWriter) *ResponseSaver {
	return &ResponseSaver{w: w}
}

// Save implements Saver
func (s *ResponseSaver) Save(ctx context.Context, name string, artifact *qrcode.Artifact) error {
	header := s.w.Header()
	header.Set("Content-Type", constant.ContentTypePNG)
	header.Set("Content-Length", strconv.Itoa(len(artifact.PNG)))
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	s.w.WriteHeader(http.StatusOK)

	if _, err := s.w.Write(artifact.PNG); err != nil {
		return fmt.Errorf("streaming %s: %w", name, err)
	}

	logger.CtxDebug(ctx, "QR code streamed", logger.LoggerInfo{
		ContextFunction: constant.CtxExport,
		Data: map[string]interface{}{
			constant.DataFileName: name,
			constant.DataSize:     len(artifact.PNG),
		},
	})
	return nil
}
