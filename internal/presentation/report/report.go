// Package report renders machine settings and per-letter traces as Markdown.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/aretw0/typeb/pkg/switchbank"
	"github.com/aretw0/typeb/pkg/wiring"
)

// Recorder collects letter events for a trace table.
type Recorder struct {
	Events []domain.LetterEvent
	Limit  int // 0 means unlimited
}

// Hooks returns lifecycle hooks that append to the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLetter: func(_ context.Context, e *domain.LetterEvent) {
			if r.Limit > 0 && len(r.Events) >= r.Limit {
				return
			}
			r.Events = append(r.Events, *e)
		},
	}
}

// LetterStyle decorates a trace letter; sixes reports its class.
type LetterStyle func(letter byte, sixes bool) string

type options struct {
	wiring switchbank.Wiring
	style  LetterStyle
}

// Option tunes Markdown.
type Option func(*options)

// WithWiring shows these tables instead of the published ones.
func WithWiring(w switchbank.Wiring) Option {
	return func(o *options) {
		o.wiring = w
	}
}

// WithLetterStyle decorates the In and Out cells of the trace, e.g. with terminal colour.
func WithLetterStyle(style LetterStyle) Option {
	return func(o *options) {
		o.style = style
	}
}

// Markdown renders a key sheet summary, the switch wiring at the starting positions
// and the trace, if any.
func Markdown(name string, s domain.Settings, trace []domain.LetterEvent, opts ...Option) string {
	o := options{
		wiring: switchbank.Historical,
		style:  func(letter byte, _ bool) string { return string(letter) },
	}
	for _, opt := range opts {
		opt(&o)
	}

	var sb strings.Builder

	title := name
	if title == "" {
		title = "(unnamed)"
	}
	fmt.Fprintf(&sb, "# Key sheet %s\n\n", title)

	plug := "straight"
	if s.Plugboard != "" {
		plug = "`" + s.Plugboard + "`"
	}

	sb.WriteString("| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Switches | `%s` |\n", keysheet.Format(s.Positions, s.Speeds))
	fmt.Fprintf(&sb, "| Sixes | %d |\n", s.Positions.Sixes+1)
	for _, r := range []domain.Role{domain.RoleFast, domain.RoleMedium, domain.RoleSlow} {
		n := s.Speeds.Switch(r)
		fmt.Fprintf(&sb, "| Twenties %s | #%d at %d |\n", r, n, s.Positions.Twenties[n-1]+1)
	}
	fmt.Fprintf(&sb, "| Plugboard | %s |\n", plug)
	fmt.Fprintf(&sb, "| Stepping | %s |\n", s.Mode)
	fmt.Fprintf(&sb, "| Non-letters | %s |\n", s.Policy)

	writeWiring(&sb, s, o.wiring)

	if len(trace) == 0 {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n## Trace (%s)\n\n", trace[0].Direction)
	sb.WriteString("| # | In | Out | Class | Sixes | Twenties | Stepped |\n|---|---|---|---|---|---|---|\n")
	for _, e := range trace {
		stepped := make([]string, len(e.Stepped))
		for i, r := range e.Stepped {
			stepped[i] = r.String()
		}
		sixes := e.Class == domain.ClassSixes
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %d | %d %d %d | %s |\n",
			e.Index+1, o.style(e.Input, sixes), o.style(e.Output, sixes), e.Class,
			e.Positions.Sixes+1,
			e.Positions.Twenties[0]+1, e.Positions.Twenties[1]+1, e.Positions.Twenties[2]+1,
			strings.Join(stepped, " "),
		)
	}
	return sb.String()
}

// writeWiring lists, per switch, where each input contact leads at the switch's
// starting position (forward direction, plugboard excluded).
func writeWiring(sb *strings.Builder, s domain.Settings, w switchbank.Wiring) {
	sb.WriteString("\n## Wiring at start\n\n| Switch | Position | In | Out |\n|---|---|---|---|\n")
	writeSwitch(sb, "Sixes", w.Sixes, s.Positions.Sixes)
	for i, t := range w.Twenties {
		writeSwitch(sb, fmt.Sprintf("Twenties #%d", i+1), t, s.Positions.Twenties[i])
	}
}

func writeSwitch(sb *strings.Builder, label string, t *wiring.Table, pos int) {
	in := make([]byte, 0, t.Size())
	out := make([]byte, 0, t.Size())
	for c := t.Base(); c < t.Base()+t.Size(); c++ {
		in = append(in, domain.Letter(c))
		out = append(out, t.Row(c)[pos])
	}
	fmt.Fprintf(sb, "| %s | %d | `%s` | `%s` |\n", label, pos+1, in, out)
}
