package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavings(t *testing.T) {
	pct, err := Savings(100, 40)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, pct, 1e-9)

	pct, err = Savings(KiB(500*1024), KiB(500*1024))
	require.NoError(t, err)
	assert.Zero(t, pct)

	pct, err = Savings(10, 15)
	require.NoError(t, err)
	assert.InDelta(t, -50.0, pct, 1e-9)
}

func TestSavingsZeroOriginal(t *testing.T) {
	_, err := Savings(0, 1.5)
	assert.ErrorIs(t, err, ErrZeroOriginalSize)

	_, err = Savings(0, 0)
	assert.ErrorIs(t, err, ErrZeroOriginalSize)
}

func TestResultSizes(t *testing.T) {
	r := Result{
		Source: SourceImage{Bytes: 2048},
		Dest:   DestImage{Bytes: 512},
	}
	assert.Equal(t, 2.0, r.OriginalKB())
	assert.Equal(t, 0.5, r.OptimizedKB())
	assert.Equal(t, int64(1536), r.BytesSaved())
}
