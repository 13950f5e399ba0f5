// Command spectra renders HTML reports for spectral factorization and
// Bochner measure recovery.
//
// Examples:
//
//	spectra -poly '{"-1":[0.5],"0":[2],"1":[0.5]}'
//	spectra -bochner fejer -tol 1e-8
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cwbudde/algo-spectral/spectral/bochner"
	"github.com/cwbudde/algo-spectral/spectral/core"
	"github.com/cwbudde/algo-spectral/spectral/dft"
	"github.com/cwbudde/algo-spectral/spectral/fejer"
	"github.com/cwbudde/algo-spectral/spectral/trigpoly"
	"github.com/cwbudde/algo-spectral/spectral/winding"
)

const samples = 256

var windingRadii = []float64{0.5, 0.8, 1.25, 2.0}

// ------------------------------ input parsing ------------------------------

// parsePoly decodes a JSON object mapping frequencies to coefficients given
// as [re] or [re, im] arrays.
func parsePoly(s string) (trigpoly.TrigPoly, error) {
	var raw map[string][]float64
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return trigpoly.Zero(), fmt.Errorf("decode coefficient map: %w", err)
	}

	coeffs := make(map[int]complex128, len(raw))
	for key, parts := range raw {
		k, err := strconv.Atoi(key)
		if err != nil {
			return trigpoly.Zero(), fmt.Errorf("frequency %q: %w", key, err)
		}
		switch len(parts) {
		case 1:
			coeffs[k] = complex(parts[0], 0)
		case 2:
			coeffs[k] = complex(parts[0], parts[1])
		default:
			return trigpoly.Zero(), fmt.Errorf("frequency %q: want [re] or [re, im], got %d values", key, len(parts))
		}
	}

	return trigpoly.New(coeffs), nil
}

func polyToJSON(p trigpoly.TrigPoly) map[string][]float64 {
	out := make(map[string][]float64, len(p.Support()))
	for _, k := range p.Support() {
		c := p.Coeff(k)
		out[strconv.Itoa(k)] = []float64{real(c), imag(c)}
	}
	return out
}

// ------------------------- plotting: go-echarts HTML -------------------------

func toLineItems(vals []float64) []opts.LineData {
	out := make([]opts.LineData, len(vals))
	for i, v := range vals {
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func toBarItems(vals []float64) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

type series struct {
	name   string
	values []float64
}

func newLineChart(title, subtitle string, xLabels []string, ss []series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(xLabels)
	for _, s := range ss {
		line.AddSeries(s.name, toLineItems(s.values))
	}
	line.SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return line
}

func newMeasureChart(title string, m bochner.Measure) *charts.Bar {
	support := m.Support()
	xLabels := make([]string, len(support))
	weights := make([]float64, len(support))
	for i, k := range support {
		xLabels[i] = strconv.Itoa(k)
		weights[i] = m.Weight(k)
	}

	bar := charts.NewBar()
	subtitle := fmt.Sprintf("support=%d, total mass=%.6f", len(support), m.Total())
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(xLabels).
		AddSeries("weight", toBarItems(weights)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return bar
}

func thetaLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%.3f", 2*math.Pi*float64(i)/float64(n))
	}
	return out
}

// unwrapPhase accumulates the continuous argument along a closed curve.
func unwrapPhase(points []complex128) []float64 {
	out := make([]float64, len(points))
	if len(points) == 0 {
		return out
	}

	out[0] = cmplx.Phase(points[0])
	for i := 1; i < len(points); i++ {
		step := core.WrapAngle(cmplx.Phase(points[i]) - cmplx.Phase(points[i-1]))
		out[i] = out[i-1] + step
	}
	return out
}

// ------------------------------ report sections ------------------------------

type factorReport struct {
	Input       map[string][]float64 `json:"input"`
	Factor      map[string][]float64 `json:"factor"`
	MaxResidual float64              `json:"max_residual"`
	Windings    map[string]string    `json:"windings"`
}

func runFactorization(page *components.Page, polyJSON string) factorReport {
	r, err := parsePoly(polyJSON)
	if err != nil {
		log.Fatalf("parse -poly: %v", err)
	}

	factor, err := fejer.Factorize(r)
	if err != nil {
		log.Fatalf("factorize: %v", err)
	}

	fmt.Println("Analytic factor:")
	for _, k := range factor.Support() {
		fmt.Printf("  k=%+d: %v\n", k, factor.Coeff(k))
	}

	// Sample R(θ) and |P(θ)|² on a common grid.
	evals := make([]complex128, samples)
	rVals := make([]float64, samples)
	for i := range evals {
		theta := 2 * math.Pi * float64(i) / float64(samples)
		evals[i] = factor.Eval(theta)
		rVals[i] = real(r.Eval(theta))
	}
	pSquared := dft.Power(evals)

	maxResidual := 0.0
	for i := range rVals {
		if d := math.Abs(pSquared[i] - rVals[i]); d > maxResidual {
			maxResidual = d
		}
	}
	fmt.Printf("max |P|^2 - R residual over %d samples: %.3e\n", samples, maxResidual)

	page.AddCharts(newLineChart(
		"factorization check",
		fmt.Sprintf("max residual %.3e", maxResidual),
		thetaLabels(samples),
		[]series{{"R", rVals}, {"|P|^2", pSquared}},
	))

	// Winding phase of the associated algebraic polynomial over a radius
	// sweep, plus certified inside counts where the radius is off-root.
	coeffs, _ := r.ToPoly()

	var phaseSeries []series
	windings := make(map[string]string, len(windingRadii))
	for _, radius := range windingRadii {
		label := strconv.FormatFloat(radius, 'g', -1, 64)
		phaseSeries = append(phaseSeries, series{
			name:   "r=" + label,
			values: unwrapPhase(winding.Curve(coeffs, radius, samples)),
		})

		if n, err := winding.Number(coeffs, radius, samples); err != nil {
			windings[label] = err.Error()
		} else {
			windings[label] = strconv.Itoa(n)
		}
	}

	page.AddCharts(newLineChart(
		"winding phase of Q(r·e^{iθ})",
		"unwrapped argument; total rise is 2π times the winding number",
		thetaLabels(samples),
		phaseSeries,
	))

	return factorReport{
		Input:       polyToJSON(r),
		Factor:      polyToJSON(factor),
		MaxResidual: maxResidual,
		Windings:    windings,
	}
}

type measureReport struct {
	Function  string             `json:"function"`
	Tolerance float64            `json:"tolerance"`
	Weights   map[string]float64 `json:"weights"`
	Total     float64            `json:"total_mass"`
}

// builtinFunc returns a named continuous positive-definite sample function.
func builtinFunc(name string) (func(float64) complex128, error) {
	switch name {
	case "cos":
		return func(theta float64) complex128 {
			return complex(math.Cos(theta), 0)
		}, nil
	case "fejer":
		// Order-8 Fejér kernel, coefficients 1-|k|/8.
		const order = 8
		return func(theta float64) complex128 {
			var sum complex128
			for k := -order + 1; k < order; k++ {
				w := 1 - math.Abs(float64(k))/order
				sum += complex(w, 0) * cmplx.Exp(complex(0, float64(k)*theta))
			}
			return sum
		}, nil
	case "const":
		return func(float64) complex128 { return 1 }, nil
	default:
		return nil, fmt.Errorf("unknown sample function %q (want cos, fejer or const)", name)
	}
}

func runBochner(page *components.Page, name string, tol float64) measureReport {
	f, err := builtinFunc(name)
	if err != nil {
		log.Fatalf("-bochner: %v", err)
	}

	m, err := bochner.Approximate(f, tol)
	if err != nil {
		log.Fatalf("approximate: %v", err)
	}

	fmt.Printf("Spectral measure of %q (total mass %.6f):\n", name, m.Total())
	weights := make(map[string]float64, len(m.Support()))
	for _, k := range m.Support() {
		fmt.Printf("  k=%+d: %.6f\n", k, m.Weight(k))
		weights[strconv.Itoa(k)] = m.Weight(k)
	}

	page.AddCharts(newMeasureChart("spectral measure of "+name, m))

	return measureReport{
		Function:  name,
		Tolerance: tol,
		Weights:   weights,
		Total:     m.Total(),
	}
}

// ------------------------------ JSON and I/O ------------------------------

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ------------------------------- main routine -------------------------------

func main() {
	polyJSON := flag.String("poly", "", `trigonometric polynomial as JSON, e.g. {"-1":[0.5],"0":[2],"1":[0.5]}`)
	bochnerName := flag.String("bochner", "", "built-in positive-definite function: cos|fejer|const")
	tol := flag.Float64("tol", 1e-6, "tolerance for measure recovery")
	outDir := flag.String("out", "spectra_reports", "output directory for reports")
	flag.Parse()

	if *polyJSON == "" && *bochnerName == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	page := components.NewPage()
	report := map[string]any{}

	if *polyJSON != "" {
		report["factorization"] = runFactorization(page, *polyJSON)
	}
	if *bochnerName != "" {
		report["measure"] = runBochner(page, *bochnerName, *tol)
	}

	ts := time.Now().Format("20060102_150405")

	jsonPath := filepath.Join(*outDir, fmt.Sprintf("spectra_%s.json", ts))
	if err := saveJSON(jsonPath, report); err != nil {
		log.Printf("warn: save report: %v", err)
	}

	htmlPath := filepath.Join(*outDir, fmt.Sprintf("spectra_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}

	fmt.Println("Report page:", htmlPath)
	fmt.Println("Report JSON:", jsonPath)
}
