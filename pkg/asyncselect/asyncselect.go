// Package asyncselect is a select field whose options come from an external
// search. Typing is debounced before the source is queried; a result is
// applied only while the field is still focused and its term still equals the
// buffer, so a slow response for an older term never overwrites a newer one.
//
// Searches run on their own goroutines and post results to Results(). The
// owner drains that channel on the goroutine that drives the controller and
// hands each result to Apply; the controller itself is not safe for
// concurrent use.
package asyncselect

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/value"
)

// DefaultDebounce is the quiet period before a search is issued.
const DefaultDebounce = 500 * time.Millisecond

// Result is a completed search.
type Result struct {
	Term    string
	Options []value.Option
	Err     error
}

// Config configures New. Result lists are shown as returned by the source,
// without filtering them again by the buffer.
type Config struct {
	Source   OptionSource
	Value    value.Value[string]
	OnChange field.ChangeFunc[string]
	// Options seeds the list, e.g. with the option of the initial value.
	Options  []value.Option
	Debounce time.Duration
	Clock    Clock
	// Context bounds every search; Close cancels it.
	Context context.Context
}

// Controller wraps a field.Select with debounced searching.
type Controller struct {
	*field.Select

	source   OptionSource
	debounce time.Duration
	clock    Clock
	group    singleflight.Group
	results  chan Result

	ctx    context.Context
	cancel context.CancelFunc

	timer   Timer
	loading bool
	err     error
}

// New builds the controller. Field options (id, logger, auto-erase) are
// forwarded to the wrapped select.
func New(cfg Config, opts ...field.Option) *Controller {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	c := &Controller{
		source:   cfg.Source,
		debounce: cfg.Debounce,
		clock:    cfg.Clock,
		results:  make(chan Result, 16),
		ctx:      ctx,
		cancel:   cancel,
	}
	if c.debounce <= 0 {
		c.debounce = DefaultDebounce
	}
	if c.clock == nil {
		c.clock = realClock{}
	}
	c.Select = field.NewSelect(field.SelectConfig{
		Options:    seedSelected(cfg.Options, cfg.Value),
		Value:      cfg.Value,
		OnChange:   cfg.OnChange,
		Unfiltered: true,
	}, opts...)
	return c
}

// Results delivers completed searches. Drain it and pass each result to
// Apply.
func (c *Controller) Results() <-chan Result { return c.results }

// Loading reports whether a search for the current buffer is outstanding.
func (c *Controller) Loading() bool { return c.loading }

// Err returns the error of the last applied search.
func (c *Controller) Err() error { return c.err }

// Input updates the buffer like a select and schedules a search for the new
// text once typing pauses.
func (c *Controller) Input(text string) {
	if c.Disabled() {
		return
	}
	c.Select.Input(text)
	c.schedule(text)
}

// Search schedules a search for the current buffer, e.g. to populate the
// list on focus.
func (c *Controller) Search() {
	if c.Disabled() {
		return
	}
	c.schedule(c.Text())
}

// Apply installs a result when it still matches the buffer of a focused
// field. It reports whether the result was used.
func (c *Controller) Apply(res Result) bool {
	if !c.Focused() || res.Term != c.Text() {
		c.Logger().Logf("asyncselect %s: dropping stale result for %q", c.ID(), res.Term)
		return false
	}
	c.loading = false
	if res.Err != nil {
		c.err = res.Err
		c.Logger().Logf("asyncselect %s: search %q failed: %v", c.ID(), res.Term, res.Err)
		return false
	}
	c.err = nil
	c.SetOptions(c.keepSelected(res.Options))
	return true
}

// Blur stops a pending search and commits like a select.
func (c *Controller) Blur() {
	c.stop()
	c.Select.Blur()
}

// SetDisabled stops a pending search before disabling.
func (c *Controller) SetDisabled(disabled bool) {
	if disabled {
		c.stop()
	}
	c.Select.SetDisabled(disabled)
}

// Close cancels in-flight searches. Results already posted stay readable.
func (c *Controller) Close() {
	c.stop()
	c.cancel()
}

func (c *Controller) schedule(term string) {
	c.stop()
	if c.source == nil {
		return
	}
	c.loading = true
	c.timer = c.clock.AfterFunc(c.debounce, func() { c.run(term) })
}

func (c *Controller) stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.loading = false
}

// run executes on the timer goroutine; it must not touch controller state.
func (c *Controller) run(term string) {
	out, err, _ := c.group.Do(term, func() (any, error) {
		return c.source.Search(c.ctx, term)
	})
	opts, _ := out.([]value.Option)
	res := Result{Term: term, Options: slices.Clone(opts), Err: err}
	select {
	case c.results <- res:
	case <-c.ctx.Done():
	}
}

// seedSelected adds a placeholder option for an initial value no option
// describes yet, so the field shows it until a search supplies its label.
func seedSelected(options []value.Option, v value.Value[string]) []value.Option {
	selected, ok := v.Get()
	if !ok {
		return options
	}
	if _, found := value.FindOption(options, selected); found {
		return options
	}
	return append(slices.Clone(options), value.Option{Value: selected})
}

// keepSelected carries the selected option over so its label survives a
// result list that no longer contains it.
func (c *Controller) keepSelected(options []value.Option) []value.Option {
	selected, ok := c.Value().Get()
	if !ok {
		return options
	}
	if _, found := value.FindOption(options, selected); found {
		return options
	}
	if opt, found := value.FindOption(c.Options(), selected); found {
		return append(options, opt)
	}
	return options
}
