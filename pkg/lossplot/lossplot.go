// Package lossplot renders the training loss history of a gradient descent
// fit as a line chart using gonum/plot.
package lossplot

import (
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// Config controls the appearance of a loss curve.
type Config struct {
	Title string

	// LogScale draws the loss axis on a log10 scale. Every loss must be positive.
	LogScale bool

	Width  vg.Length
	Height vg.Length
}

// DefaultConfig returns a 6x4 inch linear-scale chart.
func DefaultConfig() Config {
	return Config{
		Title:  "Training loss",
		Width:  6 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

// LossCurve builds a plot of loss (MSE) against iteration index.
//
//	reg, _ := linear.NewGradientDescentRegressor(X, y, linear.WithLossHistory(true))
//	_ = reg.Fit()
//	p, err := lossplot.LossCurve(reg.LossHistory(), lossplot.DefaultConfig())
func LossCurve(history []float64, cfg Config) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, errors.NewValueError("lossplot.LossCurve", "loss history is empty")
	}
	if err := errors.CheckNumericalStability("lossplot", history, -1); err != nil {
		return nil, err
	}
	if cfg.LogScale && floats.Min(history) <= 0 {
		return nil, errors.NewValidationError("log_scale", "requires strictly positive losses", floats.Min(history))
	}

	pts := make(plotter.XYs, len(history))
	for i, loss := range history {
		pts[i].X = float64(i)
		pts[i].Y = loss
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "MSE"
	p.Add(plotter.NewGrid())
	if cfg.LogScale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "create loss line")
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return p, nil
}

// SaveLossCurve writes the loss curve to path. The image format is chosen
// from the file extension (png, svg, pdf, ...).
func SaveLossCurve(path string, history []float64, cfg Config) error {
	p, err := LossCurve(history, cfg)
	if err != nil {
		return err
	}
	if err := p.Save(cfg.Width, cfg.Height, path); err != nil {
		return errors.Wrapf(err, "save loss curve to %s", path)
	}
	return nil
}

// WriteLossCurve encodes the loss curve in the given format and writes it to w.
func WriteLossCurve(w io.Writer, history []float64, format string, cfg Config) error {
	p, err := LossCurve(history, cfg)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(cfg.Width, cfg.Height, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported loss curve format %q", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "write loss curve")
	}
	return nil
}
