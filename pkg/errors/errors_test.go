package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "gdlinear: Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "empty data",
			err:     nil,
			wantMsg: "gdlinear: Predict: empty data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		name string
		axis int
		want string
	}{
		{"rows", 0, "gdlinear: NewGradientDescentRegressor: dimension mismatch on axis 0 (rows). Expected 6, got 5"},
		{"features", 1, "gdlinear: NewGradientDescentRegressor: dimension mismatch on axis 1 (features). Expected 6, got 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("NewGradientDescentRegressor", 6, 5, tt.axis)
			if err.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
			}

			var dimErr *DimensionError
			if !As(err, &dimErr) {
				t.Fatal("Error should be castable to *DimensionError")
			}
			if dimErr.Axis != tt.axis {
				t.Errorf("Axis = %d, want %d", dimErr.Axis, tt.axis)
			}

			// マークにより ErrShapeMismatch として判定できる
			if !Is(err, ErrShapeMismatch) {
				t.Error("Expected Is(err, ErrShapeMismatch) to be true")
			}
			if Is(err, ErrDiverged) {
				t.Error("DimensionError must not match ErrDiverged")
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("GradientDescentRegressor", "ExportWeights")

	want := "gdlinear: GradientDescentRegressor: this model is not fitted yet. Call Fit() before using ExportWeights()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be a finite positive number", -0.5)

	want := "gdlinear: validation failed for parameter 'learning_rate': must be a finite positive number (got: -0.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Fatal("Error should be castable to *ValidationError")
	}
	if valErr.ParamName != "learning_rate" {
		t.Errorf("ParamName = %q", valErr.ParamName)
	}
}

func TestNewNumericalInstabilityError(t *testing.T) {
	values := []float64{1, math.NaN(), math.Inf(1), 4, 5, 6, 7}
	err := NewNumericalInstabilityError("gradient_update", values, 12)

	msg := err.Error()
	if !strings.Contains(msg, "gradient_update at iteration 12") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "...") {
		t.Errorf("long value lists should be truncated: %s", msg)
	}

	// 呼び出し側のバッファ変更の影響を受けない
	values[0] = 99
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("Error should be castable to *NumericalInstabilityError")
	}
	if numErr.Values[0] != 1 {
		t.Errorf("Values should be copied, got %v", numErr.Values[0])
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	dimErr := &DimensionError{Op: "Predict", Expected: 2, Got: 3, Axis: 1}
	logger.Error().Object("detail", dimErr).Msg("shape")

	out := buf.String()
	for _, want := range []string{`"type":"DimensionError"`, `"axis_name":"features"`, `"expected":2`, `"got":3`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewDivergenceWarning("GradientDescentRegressor", 10, 5))
	if len(got) != 1 {
		t.Fatalf("expected one warning, got %d", len(got))
	}
	if !strings.Contains(got[0].Error(), "non-finite parameters after 10 iterations") {
		t.Errorf("unexpected warning: %v", got[0])
	}

	// zerolog関数が設定されていればそちらが優先される
	var zerologGot []error
	SetZerologWarnFunc(func(w error) { zerologGot = append(zerologGot, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewDivergenceWarning("GradientDescentRegressor", 20, 5))
	if len(zerologGot) != 1 || len(got) != 1 {
		t.Errorf("zerolog func should take precedence: zerolog=%d handler=%d", len(zerologGot), len(got))
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in GradientDescentRegressor.Predict")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in GradientDescentRegressor.Predict") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Predict", 10, 5)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	expectedMsg := "in Predict: expected 10, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestMark(t *testing.T) {
	base := NewNumericalInstabilityError("gradient_update", []float64{math.NaN()}, 3)
	err := Mark(NewModelError("GradientDescentRegressor.Fit", "diverged", base), ErrDiverged)

	if !Is(err, ErrDiverged) {
		t.Error("Expected Is(err, ErrDiverged) to be true")
	}
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("marked error should still expose the cause")
	}
	if numErr.Iteration != 3 {
		t.Errorf("Iteration = %d, want 3", numErr.Iteration)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
