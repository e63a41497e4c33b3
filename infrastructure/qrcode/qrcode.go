package qrcode

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"time"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/mdp/qrterminal/v3"
	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Options controls how a QR code is rasterised
type Options struct {
	PixelDimension int    `json:"pixel_dimension"`
	MarginModules  int    `json:"margin_modules"`
	Foreground     string `json:"foreground"`
	Background     string `json:"background"`
}

// DefaultOptions returns the fixed rendering options with the given
// foreground colour.
func DefaultOptions(foreground string) Options {
	return Options{
		PixelDimension: constant.PixelDimension,
		MarginModules:  constant.MarginModules,
		Foreground:     foreground,
		Background:     constant.BackgroundColor,
	}
}

// Artifact is an encoded PNG produced from exactly one Encode call
type Artifact struct {
	Text      string
	Options   Options
	PNG       []byte
	Modules   int
	CreatedAt time.Time
}

// DataURI returns the PNG as a self-contained data: URI
func (a *Artifact) DataURI() string {
	return constant.DataURIPrefixPNG + base64.StdEncoding.EncodeToString(a.PNG)
}

// EncodingError is returned when the text cannot be represented with the
// requested options.
type EncodingError struct {
	Code   string
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("qrcode: %s: %v", e.Reason, e.Err)
	}
	return "qrcode: " + e.Reason
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// IsEncodingError reports whether err is, or wraps, an *EncodingError
func IsEncodingError(err error) bool {
	var encErr *EncodingError
	return errors.As(err, &encErr)
}

// Generator handles QR code generation
type Generator struct {
	level qrcode.RecoveryLevel
	now   func() time.Time
}

// NewGenerator creates a new QR code generator using medium error correction
func NewGenerator() *Generator {
	return &Generator{
		level: qrcode.Medium,
		now:   time.Now,
	}
}

// Encode renders text as a PNG QR code. The image is PixelDimension pixels
// square unless the symbol plus margin needs more, in which case every
// module gets one pixel.
func (g *Generator) Encode(ctx context.Context, text string, opts Options) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, &EncodingError{Code: constant.ErrCodeQRBuild, Reason: constant.ErrEmptyEncodeText}
	}
	if opts.PixelDimension <= 0 || opts.MarginModules < 0 {
		return nil, &EncodingError{
			Code:   constant.ErrCodeQRRender,
			Reason: fmt.Sprintf("invalid geometry width=%d margin=%d", opts.PixelDimension, opts.MarginModules),
		}
	}

	fg, err := ParseHexColor(opts.Foreground)
	if err != nil {
		return nil, &EncodingError{Code: constant.ErrCodeQRColor, Reason: "foreground", Err: err}
	}
	bg, err := ParseHexColor(opts.Background)
	if err != nil {
		return nil, &EncodingError{Code: constant.ErrCodeQRColor, Reason: "background", Err: err}
	}

	q, err := qrcode.New(text, g.level)
	if err != nil {
		return nil, &EncodingError{Code: constant.ErrCodeQRCapacity, Reason: "build symbol", Err: err}
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	img := rasterize(bitmap, opts.MarginModules, opts.PixelDimension, color.Palette{bg, fg})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &EncodingError{Code: constant.ErrCodeQRRender, Reason: "encode png", Err: err}
	}

	logger.CtxDebug(ctx, "QR code encoded", logger.LoggerInfo{
		ContextFunction: constant.CtxEncode,
		Data: map[string]interface{}{
			constant.DataTextLength: len(text),
			constant.DataModules:    len(bitmap),
			constant.DataDimension:  img.Bounds().Dx(),
			constant.DataSize:       buf.Len(),
		},
	})

	return &Artifact{
		Text:      text,
		Options:   opts,
		PNG:       buf.Bytes(),
		Modules:   len(bitmap),
		CreatedAt: g.now(),
	}, nil
}

// rasterize draws the module matrix with a quiet zone of margin modules,
// then enlarges it by the integer factor width/total and centres it on a
// width x width canvas of the light colour. When the symbol needs more
// than width pixels every module gets one pixel.
// palette[0] is the light colour, palette[1] the dark one.
func rasterize(bitmap [][]bool, margin, width int, palette color.Palette) *image.Paletted {
	total := len(bitmap) + 2*margin
	src := image.NewPaletted(image.Rect(0, 0, total, total), palette)
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				src.SetColorIndex(x+margin, y+margin, 1)
			}
		}
	}

	scale := width / total
	if scale < 1 {
		return src
	}

	dst := image.NewPaletted(image.Rect(0, 0, width, width), palette)
	offset := (width - total*scale) / 2
	target := image.Rect(offset, offset, offset+total*scale, offset+total*scale)
	xdraw.NearestNeighbor.Scale(dst, target, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Decode reads a PNG QR code and returns the text it carries
func (g *Generator) Decode(data []byte) (string, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding png: %w", err)
	}
	if paletted, ok := img.(*image.Paletted); ok && len(paletted.Palette) == 2 {
		img = twoTone(paletted)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarizing image: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%s: %w", constant.ErrNoQRFound, err)
	}

	logger.Debug("QR code decoded", logger.LoggerInfo{
		ContextFunction: constant.CtxDecode,
		Data: map[string]interface{}{
			constant.DataTextLength: len(result.GetText()),
		},
	})
	return result.GetText(), nil
}

// twoTone repaints a two-colour image in pure black and white so light
// foreground colours survive binarisation. The darker palette entry is
// taken as the module colour.
func twoTone(src *image.Paletted) *image.Paletted {
	bw := color.Palette{color.White, color.Black}
	if luminance(src.Palette[0]) < luminance(src.Palette[1]) {
		bw = color.Palette{color.Black, color.White}
	}
	return &image.Paletted{
		Pix:     src.Pix,
		Stride:  src.Stride,
		Rect:    src.Rect,
		Palette: bw,
	}
}

func luminance(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// Preview writes a half-block terminal rendering of text to w
func (g *Generator) Preview(w io.Writer, text string) {
	qrterminal.GenerateHalfBlock(text, qrterminal.M, w)
}
