//go:build !govips || !cgo

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"
)

type stdlibTransformer struct{}

func (t stdlibTransformer) Transform(ctx context.Context, input []byte, opts Options) (Transformed, error) {
	select {
	case <-ctx.Done():
		return Transformed{}, ctx.Err()
	default:
	}

	src, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return Transformed{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return Transformed{}, fmt.Errorf("%w: source image has invalid dimensions", ErrDecode)
	}

	out, err := resizeToMaxWidth(src, opts.MaxWidth)
	if err != nil {
		return Transformed{}, err
	}

	var buf bytes.Buffer
	// chai2010/webp runs libwebp at its default method; Options.Method is
	// only honoured by the govips build.
	if err := webp.Encode(&buf, out, &webp.Options{Quality: float32(opts.Quality)}); err != nil {
		return Transformed{}, fmt.Errorf("%w: webp: %w", ErrEncode, err)
	}

	outBounds := out.Bounds()
	return Transformed{
		Data:         buf.Bytes(),
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
		Width:        outBounds.Dx(),
		Height:       outBounds.Dy(),
		Resized:      outBounds.Dx() != bounds.Dx() || outBounds.Dy() != bounds.Dy(),
	}, nil
}

func resizeToMaxWidth(src image.Image, maxWidth int) (image.Image, error) {
	if maxWidth <= 0 {
		return nil, errors.New("resize requires max width > 0")
	}

	bounds := src.Bounds()
	width, height, resized := TargetSize(bounds.Dx(), bounds.Dy(), maxWidth)
	if !resized {
		return src, nil
	}
	if height < 1 {
		height = 1
	}

	return resize.Resize(uint(width), uint(height), src, resize.Lanczos3), nil
}
