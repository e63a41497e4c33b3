package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := appLogger.SetLogger(zap.New(core))
	t.Cleanup(func() { appLogger.SetLogger(prev) })
	return logs
}

func TestRunGenerate_WritesDecodableFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := runGenerate(context.Background(), &out, generateOptions{
		text:   "https://example.com",
		color:  "#000000",
		outDir: dir,
	})

	require.NoError(t, err)
	path := filepath.Join(dir, "qrcode.png")
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "QR for: https://example.com")

	var decoded bytes.Buffer
	require.NoError(t, runDecode(&decoded, path))
	assert.Equal(t, "https://example.com", strings.TrimSpace(decoded.String()))
}

func TestRunGenerate_EmptyText(t *testing.T) {
	dir := t.TempDir()

	err := runGenerate(context.Background(), &bytes.Buffer{}, generateOptions{
		color:  "#000000",
		outDir: dir,
	})

	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "qrcode.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunGenerate_EmptyTextIsLogged(t *testing.T) {
	logs := observeLogs(t)

	err := runGenerate(context.Background(), &bytes.Buffer{}, generateOptions{
		color:  "#000000",
		outDir: t.TempDir(),
	})

	require.EqualError(t, err, constant.ErrEmptySourceText)
	entries := logs.FilterField(zap.String(constant.LogErrorCodeKey, constant.ErrCodeEmptySourceText)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, constant.CtxCommandGenerate, entries[0].ContextMap()[constant.LogFunctionKey])
}

func TestRunGenerate_WithoutCopyLeavesClipboardAlone(t *testing.T) {
	logs := observeLogs(t)

	err := runGenerate(context.Background(), &bytes.Buffer{}, generateOptions{
		text:      "abc",
		color:     "#000000",
		outDir:    t.TempDir(),
		clipboard: true,
	})

	require.NoError(t, err)
	assert.Zero(t, logs.FilterField(zap.String(constant.LogFunctionKey, constant.CtxClipboard)).Len())
}

func TestRunGenerate_InvalidColor(t *testing.T) {
	err := runGenerate(context.Background(), &bytes.Buffer{}, generateOptions{
		text:   "abc",
		color:  "#12",
		outDir: t.TempDir(),
	})

	assert.Error(t, err)
}

func TestRunGenerate_Preview(t *testing.T) {
	var out bytes.Buffer

	err := runGenerate(context.Background(), &out, generateOptions{
		text:    "abc",
		color:   "#000000",
		outDir:  t.TempDir(),
		preview: true,
	})

	require.NoError(t, err)
	assert.Greater(t, len(strings.Split(out.String(), "\n")), 5)
}

func TestRunDecode_MissingFile(t *testing.T) {
	err := runDecode(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.png"))

	assert.Error(t, err)
}

func TestRootCommand_ConfigErrorStopsCommand(t *testing.T) {
	prev := appLogger.SetLogger(nil)
	t.Cleanup(func() { appLogger.SetLogger(prev) })

	path := filepath.Join(t.TempDir(), "qrgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o644))
	outDir := t.TempDir()

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"generate", "abc", "-c", path, "-o", outDir})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
	assert.NoFileExists(t, filepath.Join(outDir, "qrcode.png"))
}

func TestVersionCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "qrgen "+version+"\n", out.String())
}
