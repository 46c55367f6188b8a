package domain

import "errors"

var ErrZeroOriginalSize = errors.New("original size is zero")

// SourceImage describes a PNG picked up by the enumerator.
type SourceImage struct {
	Path   string
	Name   string
	Bytes  int64
	Width  int
	Height int
}

// DestImage describes the WebP written for a SourceImage.
type DestImage struct {
	Path   string
	Name   string
	Bytes  int64
	Width  int
	Height int
}

type Result struct {
	Source     SourceImage
	Dest       DestImage
	Resized    bool
	SavingsPct float64
}

func (r Result) OriginalKB() float64 {
	return KiB(r.Source.Bytes)
}

func (r Result) OptimizedKB() float64 {
	return KiB(r.Dest.Bytes)
}

func (r Result) BytesSaved() int64 {
	return r.Source.Bytes - r.Dest.Bytes
}

func KiB(bytes int64) float64 {
	return float64(bytes) / 1024
}

// Savings reports how much smaller optimized is than original, in percent.
// A negative value means the output grew.
func Savings(originalKB, optimizedKB float64) (float64, error) {
	if originalKB == 0 {
		return 0, ErrZeroOriginalSize
	}
	return (originalKB - optimizedKB) / originalKB * 100, nil
}
