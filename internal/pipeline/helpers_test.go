package pipeline

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func buildTestPNG(tb testing.TB, w, h int) []byte {
	tb.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / w),
				G: uint8((y * 255) / h),
				B: 140,
				A: 255,
			})
		}
	}
	return encodeTestPNG(tb, img)
}

func buildFlatPNG(tb testing.TB, w, h int) []byte {
	tb.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill := color.RGBA{R: 30, G: 120, B: 200, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return encodeTestPNG(tb, img)
}

func encodeTestPNG(tb testing.TB, img image.Image) []byte {
	tb.Helper()

	var buf bytes.Buffer
	require.NoError(tb, png.Encode(&buf, img), "encode source png")
	return buf.Bytes()
}

// padPNG grows data to exactly size bytes by inserting a private ancillary
// chunk after IHDR, which decoders skip.
func padPNG(tb testing.TB, data []byte, size int) []byte {
	tb.Helper()

	const (
		signatureLen  = 8
		ihdrLen       = 4 + 4 + 13 + 4
		chunkOverhead = 12
	)
	pad := size - len(data) - chunkOverhead
	require.GreaterOrEqual(tb, pad, 0, "png already larger than %d bytes", size)

	chunk := make([]byte, 0, chunkOverhead+pad)
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(pad))
	chunk = append(chunk, "paDd"...)
	chunk = append(chunk, make([]byte, pad)...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	at := signatureLen + ihdrLen
	out := make([]byte, 0, size)
	out = append(out, data[:at]...)
	out = append(out, chunk...)
	out = append(out, data[at:]...)
	return out
}

func writeFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, data, 0o644))
	return path
}

func webpSize(tb testing.TB, path string) (int, int) {
	tb.Helper()

	f, err := os.Open(path)
	require.NoError(tb, err)
	defer f.Close()

	cfg, err := webp.DecodeConfig(f)
	require.NoError(tb, err, "decode webp config %s", path)
	return cfg.Width, cfg.Height
}
