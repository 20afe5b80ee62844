package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createBenchmarkData はベンチマーク用のデータを生成する
func createBenchmarkData(rows, cols int) (*mat.Dense, *mat.VecDense) {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			X.Set(i, j, rng.Float64()*2.0-1.0)
		}
	}

	// y = 1 + Σ (j+1)/2 * x_j + 小さなノイズ
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		sum := 1.0
		for j := 0; j < cols; j++ {
			sum += X.At(i, j) * float64(j+1) * 0.5
		}
		sum += (rng.Float64() - 0.5) * 0.1
		y.SetVec(i, sum)
	}

	return X, y
}

// BenchmarkGradientDescentFit は100反復の Fit を計測する
func BenchmarkGradientDescentFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Small_100x10", 100, 10},
		{"Medium_1000x10", 1000, 10},
		{"Large_10000x20", 10000, 20},
		{"XLarge_50000x50", 50000, 50},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)
			reg, err := NewGradientDescentRegressor(X, y, WithIterations(100))
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				reg.Reset()
				if err := reg.Fit(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkWithBias はバイアス列の追加のみを計測する（並列化の閾値 1000 行の前後）
func BenchmarkWithBias(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Sequential_900x10", 900, 10},
		{"Parallel_5000x20", 5000, 20},
		{"Parallel_50000x20", 50000, 20},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, _ := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = withBias(X)
			}
		})
	}
}

// BenchmarkPredict は学習済みモデルの予測を計測する
func BenchmarkPredict(b *testing.B) {
	X, y := createBenchmarkData(10000, 20)
	reg, err := NewGradientDescentRegressor(X, y, WithIterations(10))
	if err != nil {
		b.Fatal(err)
	}
	if err := reg.Fit(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reg.Predict(X); err != nil {
			b.Fatal(err)
		}
	}
}
