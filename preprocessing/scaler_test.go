package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)
	assert.True(t, scaler.IsFitted())

	assert.InDelta(t, 2.5, scaler.Mean[0], 1e-12)
	assert.InDelta(t, 25.0, scaler.Mean[1], 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), scaler.Scale[0], 1e-12)

	for j := 0; j < 2; j++ {
		col := mat.Col(nil, j, scaled)
		mean, std := stat.PopMeanStdDev(col, nil)
		assert.InDelta(t, 0, mean, 1e-12)
		assert.InDelta(t, 1, std, 1e-12)
	}

	restored, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, restored, 1e-12))
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		5, 1,
		5, 2,
		5, 3,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, 1.0, scaler.Scale[0])
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, scaled.At(i, 0))
	}
}

func TestStandardScalerWithoutMean(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 4})

	scaler := NewStandardScaler(false, true)
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, 0.0, scaler.Mean[0])
	assert.InDelta(t, 2.0, scaled.At(0, 0), 1e-12)
	assert.InDelta(t, 4.0, scaled.At(1, 0), 1e-12)
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))

	assert.True(t, errors.Is(scaler.Fit(&mat.Dense{}), errors.ErrEmptyData))

	require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = scaler.Transform(mat.NewDense(2, 3, nil))
	assert.True(t, errors.Is(err, errors.ErrShapeMismatch))
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, 7,
		5, 7,
		10, 7,
	})

	scaler := NewMinMaxScaler([2]float64{-1, 1})
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, scaled.At(0, 0), 1e-12)
	assert.InDelta(t, 0.0, scaled.At(1, 0), 1e-12)
	assert.InDelta(t, 1.0, scaled.At(2, 0), 1e-12)
	// 定数列は下限に寄せる
	assert.Equal(t, -1.0, scaled.At(1, 1))

	restored, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, restored.At(1, 0), 1e-12)
}

func TestMinMaxScalerInvalidRange(t *testing.T) {
	scaler := NewMinMaxScaler([2]float64{1, 1})
	err := scaler.Fit(mat.NewDense(1, 1, []float64{3}))

	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
	assert.False(t, scaler.IsFitted())
}
