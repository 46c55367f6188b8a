package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/pngwebp/internal/domain"
)

type Processor struct {
	transformer Transformer
	destDir     string
	opts        Options
}

func NewProcessor(destDir string, opts Options) (*Processor, error) {
	if strings.TrimSpace(destDir) == "" {
		return nil, errors.New("output directory is required")
	}

	transformer, err := newTransformer()
	if err != nil {
		return nil, fmt.Errorf("build transformer: %w", err)
	}

	return &Processor{
		transformer: transformer,
		destDir:     destDir,
		opts:        opts,
	}, nil
}

// Process converts one source PNG and writes the WebP next to its peers in
// the destination directory, overwriting any previous output.
func (p *Processor) Process(ctx context.Context, srcPath string) (domain.Result, error) {
	select {
	case <-ctx.Done():
		return domain.Result{}, ctx.Err()
	default:
	}

	input, err := os.ReadFile(srcPath)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%w: read input file %s: %w", ErrDecode, srcPath, err)
	}

	transformed, err := p.transformer.Transform(ctx, input, p.opts)
	if err != nil {
		return domain.Result{}, fmt.Errorf("transform stage src=%s: %w", srcPath, err)
	}

	destPath := DestPath(p.destDir, srcPath)
	if err := os.WriteFile(destPath, transformed.Data, 0o644); err != nil {
		return domain.Result{}, fmt.Errorf("%w: write output file %s: %w", ErrEncode, destPath, err)
	}

	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return domain.Result{}, fmt.Errorf("measure stage src=%s: %w", srcPath, err)
	}
	destInfo, err := os.Stat(destPath)
	if err != nil {
		return domain.Result{}, fmt.Errorf("measure stage dest=%s: %w", destPath, err)
	}

	result := domain.Result{
		Source: domain.SourceImage{
			Path:   srcPath,
			Name:   filepath.Base(srcPath),
			Bytes:  srcInfo.Size(),
			Width:  transformed.SourceWidth,
			Height: transformed.SourceHeight,
		},
		Dest: domain.DestImage{
			Path:   destPath,
			Name:   filepath.Base(destPath),
			Bytes:  destInfo.Size(),
			Width:  transformed.Width,
			Height: transformed.Height,
		},
		Resized: transformed.Resized,
	}

	result.SavingsPct, err = domain.Savings(result.OriginalKB(), result.OptimizedKB())
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", ErrZeroSize, srcPath, err)
	}
	return result, nil
}
