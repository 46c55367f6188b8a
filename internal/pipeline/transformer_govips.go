//go:build govips && cgo

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"
)

type govipsTransformer struct{}

func (t govipsTransformer) Transform(ctx context.Context, input []byte, opts Options) (Transformed, error) {
	select {
	case <-ctx.Done():
		return Transformed{}, ctx.Err()
	default:
	}

	img, err := vips.NewImageFromBuffer(input)
	if err != nil {
		return Transformed{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer img.Close()

	srcWidth, srcHeight := img.Width(), img.Height()
	if srcWidth <= 0 || srcHeight <= 0 {
		return Transformed{}, fmt.Errorf("%w: source image has invalid dimensions", ErrDecode)
	}

	resized, err := applyGovipsResize(img, opts.MaxWidth)
	if err != nil {
		return Transformed{}, err
	}

	params := vips.NewWebpExportParams()
	params.Lossless = false
	params.Quality = opts.Quality
	params.ReductionEffort = opts.Method
	data, _, err := img.ExportWebp(params)
	if err != nil {
		return Transformed{}, fmt.Errorf("%w: webp: %w", ErrEncode, err)
	}

	return Transformed{
		Data:         data,
		SourceWidth:  srcWidth,
		SourceHeight: srcHeight,
		Width:        img.Width(),
		Height:       img.Height(),
		Resized:      resized,
	}, nil
}

// applyGovipsResize scales horizontally and vertically by separate factors
// so the output dimensions match TargetSize exactly.
func applyGovipsResize(img *vips.ImageRef, maxWidth int) (bool, error) {
	if maxWidth <= 0 {
		return false, errors.New("resize requires max width > 0")
	}

	width, height, resized := TargetSize(img.Width(), img.Height(), maxWidth)
	if !resized {
		return false, nil
	}
	if height < 1 {
		height = 1
	}

	hscale := float64(width) / float64(img.Width())
	vscale := float64(height) / float64(img.Height())
	if err := img.ResizeWithVScale(hscale, vscale, vips.KernelLanczos3); err != nil {
		return false, fmt.Errorf("resize image: %w", err)
	}
	return true, nil
}
