// Package ui renders the non-interactive CLI output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/theme"
)

// Printer writes styled messages. Out gets results, Err gets failures.
type Printer struct {
	Out, Err io.Writer
	Styles   theme.Styles
}

func New(out, errw io.Writer, scheme theme.Scheme) *Printer {
	return &Printer{Out: out, Err: errw, Styles: scheme.Styles()}
}

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.Styles.Success.Render("✔ "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.Styles.Error.Render("✖ "+msg))
}

func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.Err, p.Styles.Muted.Render(msg))
}

// Panel draws lines inside a rounded border.
func (p *Printer) Panel(lines []string) {
	fmt.Fprintln(p.Out, p.Styles.Border.Render(strings.Join(lines, "\n")))
}

// ProgressBar renders done/total as a fixed-width bar.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 0 {
		width = 28
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Header is the title line with live counts.
func (p *Printer) Header(items []model.Item) string {
	d, pend := model.Stats(items)
	st := p.Styles
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		st.Title.Render("Todos"),
		st.Success.Render("✔"), d,
		st.Pending.Render("•"), pend,
		st.Accent.Render("Total"), len(items),
	)
}

// ItemLine renders one item with its id so it can be used with done/rm.
func (p *Printer) ItemLine(it model.Item) string {
	st := p.Styles
	box := st.Muted.Render(st.BoxUnchecked)
	title := truncate(it.Title, 80)
	if it.Completed {
		box = st.Success.Render(st.BoxChecked)
		title = st.Done.Render(title)
	} else {
		title = st.Text.Render(title)
	}
	return fmt.Sprintf("%s %s %s", st.Muted.Render(fmt.Sprintf("%3d", it.ID)), box, title)
}

// truncate shortens s to at most limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// ListLines renders the whole list, optionally grouped by pending/done.
func (p *Printer) ListLines(items []model.Item, group bool) []string {
	lines := []string{p.Header(items)}
	d, _ := model.Stats(items)
	lines = append(lines, p.Styles.Muted.Render(ProgressBar(d, len(items), 28)), "")

	if group {
		lines = append(lines, p.groupLines(items)...)
	} else {
		lines = append(lines, p.flatLines(items)...)
	}
	lines = append(lines, "", p.Styles.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func (p *Printer) flatLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{p.Styles.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, p.ItemLine(it))
	}
	return out
}

func (p *Printer) groupLines(items []model.Item) []string {
	var pend, done []model.Item
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, p.Styles.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, p.Styles.Muted.Render("(none)"))
	} else {
		lines = append(lines, p.flatLines(pend)...)
	}
	lines = append(lines, "", p.Styles.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, p.Styles.Muted.Render("(none)"))
	} else {
		lines = append(lines, p.flatLines(done)...)
	}
	return lines
}
