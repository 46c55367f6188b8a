package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_WideImageIsDownscaled(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	srcPath := writeFile(t, srcDir, "widget.png", padPNG(t, buildFlatPNG(t, 2400, 1200), 500*1024))

	processor, err := NewProcessor(destDir, defaultOptions())
	require.NoError(t, err)

	result, err := processor.Process(context.Background(), srcPath)
	require.NoError(t, err)

	assert.Equal(t, "widget.png", result.Source.Name)
	assert.Equal(t, int64(500*1024), result.Source.Bytes)
	assert.Equal(t, 500.0, result.OriginalKB())
	assert.Equal(t, 2400, result.Source.Width)
	assert.Equal(t, 1200, result.Source.Height)
	assert.True(t, result.Resized)

	assert.Equal(t, filepath.Join(destDir, "widget.webp"), result.Dest.Path)
	assert.Equal(t, "widget.webp", result.Dest.Name)
	w, h := webpSize(t, result.Dest.Path)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, w, result.Dest.Width)
	assert.Equal(t, h, result.Dest.Height)

	info, err := os.Stat(result.Dest.Path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), result.Dest.Bytes)
	assert.Greater(t, result.SavingsPct, 0.0)
}

func TestProcessor_NarrowImageKeepsDimensions(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	srcPath := writeFile(t, srcDir, "icon.png", padPNG(t, buildFlatPNG(t, 800, 800), 50*1024))

	processor, err := NewProcessor(destDir, defaultOptions())
	require.NoError(t, err)

	result, err := processor.Process(context.Background(), srcPath)
	require.NoError(t, err)
	assert.False(t, result.Resized)
	assert.Equal(t, 50.0, result.OriginalKB())

	w, h := webpSize(t, filepath.Join(destDir, "icon.webp"))
	assert.Equal(t, 800, w)
	assert.Equal(t, 800, h)
}

func TestProcessor_OverwritesExistingOutput(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	srcPath := writeFile(t, srcDir, "logo.png", buildTestPNG(t, 64, 32))
	stale := writeFile(t, destDir, "logo.webp", []byte("stale output"))

	processor, err := NewProcessor(destDir, defaultOptions())
	require.NoError(t, err)

	result, err := processor.Process(context.Background(), srcPath)
	require.NoError(t, err)
	assert.Equal(t, stale, result.Dest.Path)

	w, h := webpSize(t, stale)
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
}

func TestProcessor_ZeroBytePNGFailsDecode(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	srcPath := writeFile(t, srcDir, "empty.png", nil)

	processor, err := NewProcessor(destDir, defaultOptions())
	require.NoError(t, err)

	_, err = processor.Process(context.Background(), srcPath)
	assert.ErrorIs(t, err, ErrDecode)
	assert.NoFileExists(t, filepath.Join(destDir, "empty.webp"))
}

func TestProcessor_ZeroByteSourceSavingsIsAnError(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	srcPath := writeFile(t, srcDir, "empty.png", nil)

	processor, err := NewProcessor(destDir, defaultOptions())
	require.NoError(t, err)
	processor.transformer = staticTransformer{out: Transformed{Data: []byte("RIFF"), Width: 1, Height: 1}}

	_, err = processor.Process(context.Background(), srcPath)
	assert.ErrorIs(t, err, ErrZeroSize)
}

func TestProcessor_UnreadableSourceFailsDecode(t *testing.T) {
	processor, err := NewProcessor(t.TempDir(), defaultOptions())
	require.NoError(t, err)

	_, err = processor.Process(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestProcessor_MissingDestDirFailsEncode(t *testing.T) {
	srcDir := t.TempDir()
	srcPath := writeFile(t, srcDir, "widget.png", buildTestPNG(t, 40, 20))

	processor, err := NewProcessor(filepath.Join(t.TempDir(), "absent"), defaultOptions())
	require.NoError(t, err)

	_, err = processor.Process(context.Background(), srcPath)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestNewProcessorRequiresDestDir(t *testing.T) {
	_, err := NewProcessor(" ", defaultOptions())
	assert.Error(t, err)
}

type staticTransformer struct {
	out Transformed
	err error
}

func (s staticTransformer) Transform(_ context.Context, _ []byte, _ Options) (Transformed, error) {
	return s.out, s.err
}
