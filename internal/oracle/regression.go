package oracle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/calendar"
	"github.com/castlemilk/pfinance-forecast/internal/model"
)

var (
	// ErrTooFewPoints is returned when fewer than two distinct days are observed.
	ErrTooFewPoints = errors.New("at least 2 distinct days are required to fit")
	// ErrNotConverged is returned when the normal equations cannot be solved.
	ErrNotConverged = errors.New("model fit did not converge")
)

const (
	// ridgeLambda shrinks every coefficient except the intercept.
	ridgeLambda  = 1e-3
	pivotEpsilon = 1e-12
)

// Regression is an additive model fitted on the zero-filled daily series:
//
//	y(d) = intercept + trend*t(d) + weekday(d) + sum(event effects on d)
//
// Days without observations count as zero spending, so the fitted level is a
// daily spending rate rather than the average ticket size.
type Regression struct{}

// NewRegression returns the default oracle.
func NewRegression() *Regression {
	return &Regression{}
}

type regressionModel struct {
	coef   []float64
	last   time.Time
	span   float64
	labels []string
	byDay  map[time.Time][]string
}

// Fit implements Oracle.
func (r *Regression) Fit(ctx context.Context, series []Point, events []calendar.Event) (Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(series) < 2 {
		return nil, ErrTooFewPoints
	}

	totals := make(map[time.Time]float64)
	for _, p := range series {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, fmt.Errorf("non-finite value %v on %s", p.Value, p.Date.Format("2006-01-02"))
		}
		totals[model.Day(p.Date)] += p.Value
	}
	if len(totals) < 2 {
		return nil, ErrTooFewPoints
	}

	var first, last time.Time
	for d := range totals {
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	n := daysBetween(first, last) + 1

	m := &regressionModel{
		last:  last,
		span:  float64(n),
		byDay: make(map[time.Time][]string),
	}

	// Only labels that occur inside the fit window can carry an estimated effect.
	seen := make(map[string]bool)
	for _, e := range events {
		d := model.Day(e.Date)
		m.byDay[d] = append(m.byDay[d], e.Label)
		if !d.Before(first) && !d.After(last) && !seen[e.Label] {
			seen[e.Label] = true
			m.labels = append(m.labels, e.Label)
		}
	}

	k := m.width()
	xtx := make([][]float64, k)
	for i := range xtx {
		xtx[i] = make([]float64, k)
	}
	xty := make([]float64, k)
	row := make([]float64, k)

	for i := 0; i < n; i++ {
		d := first.AddDate(0, 0, i)
		y := totals[d]
		m.features(d, i, row)
		for a := 0; a < k; a++ {
			if row[a] == 0 {
				continue
			}
			xty[a] += row[a] * y
			for b := 0; b < k; b++ {
				xtx[a][b] += row[a] * row[b]
			}
		}
	}
	for a := 1; a < k; a++ {
		xtx[a][a] += ridgeLambda * float64(n)
	}

	coef, err := solve(xtx, xty)
	if err != nil {
		return nil, err
	}
	m.coef = coef
	return m, nil
}

// Predict implements Oracle.
func (r *Regression) Predict(ctx context.Context, fitted Model, horizonDays int) ([]Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, ok := fitted.(*regressionModel)
	if !ok || m == nil {
		return nil, fmt.Errorf("unexpected model type %T", fitted)
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizonDays)
	}

	n := int(m.span)
	row := make([]float64, m.width())
	out := make([]Point, 0, horizonDays)
	for k := 1; k <= horizonDays; k++ {
		d := m.last.AddDate(0, 0, k)
		m.features(d, n-1+k, row)
		var v float64
		for i, c := range m.coef {
			v += c * row[i]
		}
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		out = append(out, Point{Date: d, Value: v})
	}
	return out, nil
}

// width is intercept + trend + six weekday dummies + one column per label.
func (m *regressionModel) width() int {
	return 2 + 6 + len(m.labels)
}

func (m *regressionModel) features(d time.Time, index int, row []float64) {
	for i := range row {
		row[i] = 0
	}
	row[0] = 1
	row[1] = float64(index) / m.span
	// Sunday is the reference day.
	if wd := d.Weekday(); wd != time.Sunday {
		row[1+int(wd)] = 1
	}
	for _, label := range m.byDay[d] {
		for j, l := range m.labels {
			if l == label {
				row[8+j] = 1
			}
		}
	}
}

// solve runs Gaussian elimination with partial pivoting on a copy of a.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	m := make([][]float64, n)
	for i := range a {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < pivotEpsilon {
			return nil, ErrNotConverged
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			if f == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := m[r][n]
		for c := r + 1; c < n; c++ {
			sum -= m[r][c] * x[c]
		}
		x[r] = sum / m[r][r]
		if math.IsNaN(x[r]) || math.IsInf(x[r], 0) {
			return nil, ErrNotConverged
		}
	}
	return x, nil
}

func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
