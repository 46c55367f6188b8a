package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

const (
	SourceExt = ".png"
	DestExt   = ".webp"
)

var (
	ErrDecode   = errors.New("decode image")
	ErrEncode   = errors.New("encode image")
	ErrZeroSize = errors.New("zero-byte source")
)

// Options are the encoder settings applied to every image of a run.
type Options struct {
	MaxWidth int
	Quality  int
	Method   int
}

type Transformed struct {
	Data         []byte
	SourceWidth  int
	SourceHeight int
	Width        int
	Height       int
	Resized      bool
}

type Transformer interface {
	Transform(ctx context.Context, input []byte, opts Options) (Transformed, error)
}

// TargetSize returns the output dimensions for a width x height image.
// Images wider than maxWidth are scaled to exactly maxWidth with the height
// truncated toward zero; everything else is returned as is.
func TargetSize(width, height, maxWidth int) (int, int, bool) {
	if width <= maxWidth {
		return width, height, false
	}
	scale := float64(maxWidth) / float64(width)
	return maxWidth, int(float64(height) * scale), true
}

// DestPath maps a source PNG onto its WebP path inside destDir. Only the
// final .png extension is swapped.
func DestPath(destDir, srcPath string) string {
	return filepath.Join(destDir, DestName(filepath.Base(srcPath)))
}

func DestName(srcName string) string {
	if filepath.Ext(srcName) == SourceExt {
		srcName = strings.TrimSuffix(srcName, SourceExt)
	}
	return srcName + DestExt
}
