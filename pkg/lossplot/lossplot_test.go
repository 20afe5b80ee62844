package lossplot

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

func decayingLoss(n int) []float64 {
	history := make([]float64, n)
	for i := range history {
		history[i] = 10 * math.Exp(-float64(i)/20)
	}
	return history
}

func TestLossCurve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "fit"

	p, err := LossCurve(decayingLoss(100), cfg)
	require.NoError(t, err)
	assert.Equal(t, "fit", p.Title.Text)
	assert.Equal(t, "Iteration", p.X.Label.Text)
}

func TestLossCurveErrors(t *testing.T) {
	_, err := LossCurve(nil, DefaultConfig())
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))

	_, err = LossCurve([]float64{1, math.NaN()}, DefaultConfig())
	var instErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &instErr))

	cfg := DefaultConfig()
	cfg.LogScale = true
	_, err = LossCurve([]float64{1, 0}, cfg)
	var validation *errors.ValidationError
	assert.True(t, errors.As(err, &validation))
}

func TestWriteLossCurve(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLossCurve(&buf, decayingLoss(50), "svg", DefaultConfig()))
	assert.Contains(t, buf.String(), "<svg")

	buf.Reset()
	cfg := DefaultConfig()
	cfg.LogScale = true
	require.NoError(t, WriteLossCurve(&buf, decayingLoss(50), "png", cfg))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.Error(t, WriteLossCurve(&buf, decayingLoss(5), "bmp-not-supported", DefaultConfig()))
}

func TestSaveLossCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loss.png")
	require.NoError(t, SaveLossCurve(path, decayingLoss(30), DefaultConfig()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
