package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

type metricFunc func(yTrue, yPred mat.Vector) (float64, error)

func TestRegressionMetrics(t *testing.T) {
	perfectTrue := mat.NewVecDense(5, []float64{1, 2, 3, 4, 5})
	perfectPred := mat.NewVecDense(5, []float64{1, 2, 3, 4, 5})
	offTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	offPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})
	largeTrue := mat.NewVecDense(3, []float64{10, 20, 30})
	largePred := mat.NewVecDense(3, []float64{12, 18, 33})
	reversed := mat.NewVecDense(4, []float64{4, 3, 2, 1})

	tests := []struct {
		name   string
		metric metricFunc
		yTrue  mat.Vector
		yPred  mat.Vector
		want   float64
	}{
		{"MSE perfect", MSE, perfectTrue, perfectPred, 0},
		{"MSE simple", MSE, offTrue, offPred, 0.25},
		{"MSE larger errors", MSE, largeTrue, largePred, 17.0 / 3.0},
		{"RMSE simple", RMSE, offTrue, offPred, 0.5},
		{"RMSE unit offset", RMSE, mat.NewVecDense(4, nil), mat.NewVecDense(4, []float64{1, 1, 1, 1}), 1},
		{"MAE simple", MAE, offTrue, offPred, 0.5},
		{"MAE mixed signs", MAE, offTrue, reversed, 2},
		{"R2 perfect", R2Score, perfectTrue, perfectPred, 1},
		{"R2 worse than mean", R2Score, offTrue, reversed, -3},
		// 列ビューなど VecDense 以外の mat.Vector も受け付ける
		{"MSE column view", MSE, mat.NewDense(3, 2, []float64{10, 0, 20, 0, 30, 0}).ColView(0), largePred, 17.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegressionMetricsErrors(t *testing.T) {
	metrics := map[string]metricFunc{"MSE": MSE, "RMSE": RMSE, "MAE": MAE, "R2Score": R2Score}

	for name, metric := range metrics {
		t.Run(name+" dimension mismatch", func(t *testing.T) {
			_, err := metric(mat.NewVecDense(3, []float64{1, 2, 3}), mat.NewVecDense(2, []float64{1, 2}))
			if !errors.Is(err, errors.ErrShapeMismatch) {
				t.Errorf("expected shape mismatch, got %v", err)
			}
		})
		t.Run(name+" empty", func(t *testing.T) {
			_, err := metric(&mat.VecDense{}, &mat.VecDense{})
			var valErr *errors.ValueError
			if !errors.As(err, &valErr) {
				t.Errorf("expected ValueError, got %v", err)
			}
		})
	}
}

func TestR2ScoreNoVariance(t *testing.T) {
	yTrue := mat.NewVecDense(5, []float64{3, 3, 3, 3, 3})
	yPred := mat.NewVecDense(5, []float64{2, 3, 4, 3, 3})
	if _, err := R2Score(yTrue, yPred); err == nil {
		t.Error("expected error when yTrue has no variance")
	}
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
