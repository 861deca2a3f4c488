package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sartorproj/polldash/analysis"
)

// Failure records a panel that could not be built.
type Failure struct {
	PanelID string
	Err     error
}

// Page is a built dashboard.
type Page struct {
	Title       string
	GeneratedAt time.Time
	Panels      []*Panel
	Failures    []Failure
}

// Err joins the errors of every failed panel, or returns nil.
func (p *Page) Err() error {
	errs := make([]error, len(p.Failures))
	for i, f := range p.Failures {
		errs[i] = fmt.Errorf("panel %q: %w", f.PanelID, f.Err)
	}
	return errors.Join(errs...)
}

// Figures returns every figure of the page in panel order.
func (p *Page) Figures() []*Figure {
	var figs []*Figure
	for _, panel := range p.Panels {
		figs = append(figs, panel.Figures...)
	}
	return figs
}

// Builder turns analysis results into pages following a layout.
type Builder struct {
	layout *Layout
	clock  clockwork.Clock
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock sets the clock used to stamp pages.
func WithClock(clock clockwork.Clock) Option {
	return func(b *Builder) {
		b.clock = clock
	}
}

// WithLogger sets the logger that receives panel failures and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder returns a builder for layout. A nil layout selects
// DefaultLayout.
func NewBuilder(layout *Layout, opts ...Option) *Builder {
	if layout == nil {
		layout = DefaultLayout()
	}
	b := &Builder{
		layout: layout,
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds every panel of the layout. Panels are independent: a panel
// that fails is logged and recorded in Page.Failures while the others are
// still built. A panel built from partially invalid data is kept and the
// problem is logged as a warning.
func (b *Builder) Build(res *analysis.Results) *Page {
	page := &Page{
		Title:       b.layout.Title,
		GeneratedAt: b.clock.Now(),
	}

	for _, spec := range b.layout.Panels {
		panel, err := b.buildPanel(spec, res)
		switch {
		case panel == nil:
			if err == nil {
				err = analysis.ErrNoData
			}
			b.logger.Error("Panel failed", "panel", spec.ID, "kind", spec.Kind, "error", err)
			page.Failures = append(page.Failures, Failure{PanelID: spec.ID, Err: err})
		case err != nil:
			b.logger.Warn("Panel built from partial data", "panel", spec.ID, "kind", spec.Kind, "error", err)
			page.Panels = append(page.Panels, panel)
		default:
			b.logger.Debug("Panel built", "panel", spec.ID, "kind", spec.Kind, "figures", len(panel.Figures))
			page.Panels = append(page.Panels, panel)
		}
	}
	return page
}

func (b *Builder) buildPanel(spec PanelSpec, res *analysis.Results) (panel *Panel, err error) {
	defer func() {
		if r := recover(); r != nil {
			panel, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	if res == nil {
		return nil, analysis.ErrNoData
	}
	fn, ok := panelFuncs[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", spec.Kind)
	}
	return fn(b, spec, res)
}
