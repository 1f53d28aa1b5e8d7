package multiselect

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/goliatone/go-formfield/pkg/debug"
	"github.com/goliatone/go-formfield/pkg/value"
)

func tagOptions() []value.Option {
	return []value.Option{
		{Value: "go", Label: "Go"},
		{Value: "golang-tools", Label: "Go Tools"},
		{Value: "rust", Label: "Rust"},
		{Value: "ruby", Label: "Ruby"},
		{Value: "cobol", Label: "COBOL", Disabled: true},
	}
}

func candidateValues(c *Controller) []string {
	var out []string
	for _, opt := range c.Candidates() {
		out = append(out, opt.Value)
	}
	return out
}

func TestFilterExcludesSelectedAndMatchesAllTerms(t *testing.T) {
	c := New(Config{Options: tagOptions(), Value: []string{"rust"}})
	c.Focus()
	if diff := cmp.Diff([]string{"go", "golang-tools", "ruby"}, candidateValues(c)); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	c.Input("go tools")
	if diff := cmp.Diff([]string{"golang-tools"}, candidateValues(c)); diff != "" {
		t.Fatalf("AND filter mismatch (-want +got):\n%s", diff)
	}
}

func TestEnterAddsHighlightedAndClearsFilter(t *testing.T) {
	var changes [][]string
	c := New(Config{Options: tagOptions(), OnChange: func(values []string, wasBlur bool) {
		if !wasBlur {
			changes = append(changes, values)
		}
	}})
	c.Focus()
	c.Input("ru")
	if c.Enter() {
		t.Fatalf("enter without a highlight should not be consumed")
	}
	c.MoveHighlight(-1)
	if c.Highlighted() != 1 {
		t.Fatalf("moving up from nothing should land on the last candidate, got %d", c.Highlighted())
	}
	c.MoveHighlight(1)
	if c.Highlighted() != 0 {
		t.Fatalf("expected wrap to the first candidate, got %d", c.Highlighted())
	}
	if !c.Enter() {
		t.Fatalf("enter should add the highlighted candidate")
	}
	if c.Text() != "" {
		t.Fatalf("filter should be cleared, got %q", c.Text())
	}

	c.Input("ru")
	c.MoveHighlight(1)
	if !c.Tab() {
		t.Fatalf("tab with a candidate should be consumed")
	}
	if c.Tab() {
		t.Fatalf("tab without a highlight should move focus")
	}

	want := [][]string{{"rust"}, {"rust", "ruby"}}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestAddKeepsSetSemantics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		options := tagOptions()[:4]
		c := New(Config{Options: options})
		c.Focus()
		for _, idx := range rapid.SliceOf(rapid.IntRange(0, len(options)-1)).Draw(t, "adds") {
			c.Add(options[idx].Value)
		}
		seen := map[string]bool{}
		for _, v := range c.Values() {
			if seen[v] {
				t.Fatalf("duplicate value %q in %v", v, c.Values())
			}
			seen[v] = true
		}
	})
}

func TestAddDuplicateKeepsOrder(t *testing.T) {
	calls := 0
	c := New(Config{Options: tagOptions(), Value: []string{"go", "rust", "go"}, OnChange: func([]string, bool) { calls++ }})
	if diff := cmp.Diff([]string{"go", "rust"}, c.Values()); diff != "" {
		t.Fatalf("initial values should be deduplicated (-want +got):\n%s", diff)
	}
	c.Focus()
	c.Add("go")
	if diff := cmp.Diff([]string{"go", "rust"}, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if calls != 0 {
		t.Fatalf("re-adding must not emit, got %d calls", calls)
	}
}

func TestAddUnknownIsLogged(t *testing.T) {
	var logged []string
	c := New(Config{Options: tagOptions()}, WithID("tags"), WithLogger(debug.LoggerFunc(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})))
	c.Add("haskell")
	c.Add("cobol")
	if len(c.Values()) != 0 {
		t.Fatalf("unknown values must be ignored, got %v", c.Values())
	}
	want := []string{
		`multiselect tags: ignoring unknown option "haskell"`,
		`multiselect tags: ignoring unknown option "cobol"`,
	}
	if diff := cmp.Diff(want, logged); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestBackspaceAndRemove(t *testing.T) {
	c := New(Config{Options: tagOptions(), Value: []string{"go", "rust", "ruby"}})
	c.Focus()

	c.Input("r")
	if c.Backspace() {
		t.Fatalf("backspace with filter text belongs to the buffer")
	}
	c.Input("")
	if !c.Backspace() {
		t.Fatalf("backspace on an empty filter should remove the last value")
	}
	if diff := cmp.Diff([]string{"go", "rust"}, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	c.Blur()
	c.Remove(0)
	if diff := cmp.Diff([]string{"rust"}, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !c.Focused() {
		t.Fatalf("remove should return focus to the filter")
	}
	c.Remove(5)
	if len(c.Values()) != 1 {
		t.Fatalf("out of range remove must be ignored")
	}
}

func TestBlurCommitsAndDisable(t *testing.T) {
	var commits [][]string
	c := New(Config{Options: tagOptions(), OnChange: func(values []string, wasBlur bool) {
		if wasBlur {
			commits = append(commits, values)
		}
	}})
	c.Focus()
	c.Input("go")
	c.Add("go")
	c.Input("ru")
	if !c.Escape() || c.Text() != "" || c.PickerVisible() {
		t.Fatalf("escape should clear the filter and close the dropdown")
	}
	c.SetDisabled(true)
	if diff := cmp.Diff([][]string{{"go"}}, commits); diff != "" {
		t.Fatalf("commits mismatch (-want +got):\n%s", diff)
	}
	c.Focus()
	c.Add("rust")
	if c.Focused() || len(c.Values()) != 1 {
		t.Fatalf("disabled controller must ignore interaction")
	}
}
