// Package simulator estimates harvest yield, income and market reach for a plantation.
package simulator

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// ErrInvalidHectares is returned for zero, negative or non-finite areas.
	ErrInvalidHectares = errors.New("hectares must be a positive number")
	// ErrUnknownVariety is returned when the variety has no yield or price entry.
	ErrUnknownVariety = errors.New("unknown variety")
)

// Tables holds the per-variety figures the estimate is based on.
type Tables struct {
	// YieldPerHa is in kilograms per hectare.
	YieldPerHa map[string]float64 `yaml:"yield_per_ha"`
	// PricePerKg is in soles per kilogram.
	PricePerKg map[string]float64 `yaml:"price_per_kg"`
}

// DefaultTables returns the reference figures for the three cotton varieties.
func DefaultTables() Tables {
	return Tables{
		YieldPerHa: map[string]float64{"pardo": 420, "crema": 380, "fifo": 350},
		PricePerKg: map[string]float64{"pardo": 28, "crema": 32, "fifo": 24},
	}
}

// Varieties returns the varieties that have both a yield and a price, in a stable order.
func (t Tables) Varieties() []string {
	known := []string{"pardo", "crema", "fifo"}
	var out []string
	for _, v := range known {
		if t.has(v) {
			out = append(out, v)
		}
	}
	var extra []string
	for v := range t.YieldPerHa {
		if t.has(v) && !contains(known, v) {
			extra = append(extra, v)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func (t Tables) has(v string) bool {
	_, y := t.YieldPerHa[v]
	_, p := t.PricePerKg[v]
	return y && p
}

// Result is the outcome of one simulation.
type Result struct {
	Hectares float64
	Variety  string
	// YieldKg is rounded to whole kilograms before the income is computed.
	YieldKg float64
	Income  float64
	Market  string
}

// Simulator runs estimates against a fixed set of tables.
type Simulator struct {
	tables  Tables
	printer *message.Printer
}

// New creates a simulator. The locale tag controls number grouping in formatted output.
func New(tables Tables, locale language.Tag) *Simulator {
	return &Simulator{tables: tables, printer: message.NewPrinter(locale)}
}

// Tables returns the tables the simulator uses.
func (s *Simulator) Tables() Tables {
	return s.tables
}

// Run computes the estimate for the given area and variety.
func (s *Simulator) Run(hectares float64, variety string) (Result, error) {
	if math.IsNaN(hectares) || math.IsInf(hectares, 0) || hectares <= 0 {
		return Result{}, ErrInvalidHectares
	}
	if !s.tables.has(variety) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownVariety, variety)
	}
	yield := math.Round(s.tables.YieldPerHa[variety] * hectares)
	return Result{
		Hectares: hectares,
		Variety:  variety,
		YieldKg:  yield,
		Income:   yield * s.tables.PricePerKg[variety],
		Market:   MarketReach(hectares),
	}, nil
}

// MarketReach estimates how many brands would buy a harvest of the given area.
func MarketReach(hectares float64) string {
	switch {
	case hectares >= 5:
		return "8-12 marcas"
	case hectares >= 2:
		return "3-6 marcas"
	default:
		return "1-3 marcas"
	}
}

// FormatYield renders the yield as "480 kg".
func (s *Simulator) FormatYield(r Result) string {
	return s.printer.Sprintf("%d kg", int64(r.YieldKg))
}

// FormatIncome renders the income as "S/ 13,440" with locale grouping.
func (s *Simulator) FormatIncome(r Result) string {
	return s.printer.Sprintf("S/ %d", int64(math.Round(r.Income)))
}

// FadeDuration is how long freshly computed results take to fade in.
const FadeDuration = 400 * time.Millisecond

// Form holds the inputs and last result of one simulator panel. The landing
// page and the dashboard each own a Form.
type Form struct {
	sim      *Simulator
	Hectares float64
	Variety  string
	// Step is how much one click on the +/- control changes the area.
	Step float64

	result      *Result
	submittedAt time.Time
}

// NewForm starts with one hectare of the first known variety.
func NewForm(sim *Simulator) *Form {
	f := &Form{sim: sim, Hectares: 1, Step: 0.5}
	if vs := sim.Tables().Varieties(); len(vs) > 0 {
		f.Variety = vs[0]
	}
	return f
}

// Increase adds one step to the area.
func (f *Form) Increase() {
	f.Hectares += f.Step
}

// Decrease removes one step from the area, stopping at zero.
func (f *Form) Decrease() {
	f.Hectares = math.Max(0, f.Hectares-f.Step)
}

// CycleVariety selects the next variety.
func (f *Form) CycleVariety() {
	vs := f.sim.Tables().Varieties()
	if len(vs) == 0 {
		return
	}
	for i, v := range vs {
		if v == f.Variety {
			f.Variety = vs[(i+1)%len(vs)]
			return
		}
	}
	f.Variety = vs[0]
}

// Submit runs the simulation. Invalid input leaves the previous result on display.
func (f *Form) Submit(now time.Time) error {
	r, err := f.sim.Run(f.Hectares, f.Variety)
	if err != nil {
		return err
	}
	f.result = &r
	f.submittedAt = now
	return nil
}

// Result returns the last successful result.
func (f *Form) Result() (Result, bool) {
	if f.result == nil {
		return Result{}, false
	}
	return *f.result, true
}

// Opacity returns the fade-in progress of the result panel in [0, 1].
func (f *Form) Opacity(now time.Time) float64 {
	if f.result == nil {
		return 0
	}
	return math.Min(math.Max(float64(now.Sub(f.submittedAt))/float64(FadeDuration), 0), 1)
}

// Simulator returns the simulator the form submits to.
func (f *Form) Simulator() *Simulator {
	return f.sim
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
