package cheatsheet

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/hugomg/ftl-cheatsheet/pkg/eventgraph"
)

// Config holds the page-level knobs of the generated cheatsheet.
type Config struct {
	// Title is the page title and top heading.
	Title string `json:"title"`

	// Intro paragraphs, inserted into the page as raw HTML so that
	// the operator can include links.
	Intro []string `json:"intro"`
}

// DefaultConfig returns the stock FTL cheatsheet page settings.
func DefaultConfig() *Config {
	return &Config{
		Title: "FTL Cheatsheet",
		Intro: []string{
			`This page summarizes all the events in <a href="https://subsetgames.com/ftl.html">FTL Advanced Edition</a>.
       It exists because wiki pages are slow and the raw XML data files are unreadable
       when all you want to know is what a particular event does.
       Use Ctrl-F to find the event you are looking for, and have fun!`,
			`Notes: You can use Ctrl-S to save a local copy of this page.
       Some events in the list may be test/debug events, which cannot be encountered via normal gameplay.`,
		},
	}
}

// section is one top-level entry of the Events section.
type section struct {
	Kind string // "event" or "group"
	Name string
}

// Renderer writes the cheatsheet page for one graph. It is a
// single-use object: Render tracks which sections were printed so
// that ReportProblems can flag anything the page is missing.
type Renderer struct {
	graph  *eventgraph.Graph
	config *Config
	logger *slog.Logger
	tmpl   *template.Template

	printedEvents map[string]bool
	printedGroups map[string]bool
	printedShips  map[string]bool
	anchors       map[string]bool
}

// NewRenderer prepares a renderer for the given graph.
func NewRenderer(logger *slog.Logger, graph *eventgraph.Graph, config *Config) (*Renderer, error) {
	r := &Renderer{
		graph:         graph,
		config:        config,
		logger:        logger,
		printedEvents: make(map[string]bool),
		printedGroups: make(map[string]bool),
		printedShips:  make(map[string]bool),
		anchors:       make(map[string]bool),
	}

	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"renderSection": r.renderSection,
		"renderShip":    r.renderShipSection,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes the whole page to w. The section order is
// alphabetical so the output is deterministic for a given input.
func (r *Renderer) Render(w io.Writer) error {
	type pageData struct {
		Title    string
		Intro    []template.HTML
		Sections []section
		Ships    []string
	}

	data := pageData{Title: r.config.Title}
	for _, p := range r.config.Intro {
		data.Intro = append(data.Intro, template.HTML(p))
	}
	data.Sections = r.sections()
	for name := range r.graph.Ships {
		data.Ships = append(data.Ships, name)
	}
	sort.Strings(data.Ships)

	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render cheatsheet: %w", err)
	}
	return nil
}

// sections lists the non-inlined events and groups in alphabetical
// order. Events sort before groups of the same name, matching the
// order they enter the list.
func (r *Renderer) sections() []section {
	var out []section
	for name := range r.graph.Events {
		if !r.graph.CanInlineEvent(name) {
			out = append(out, section{Kind: "event", Name: name})
		}
	}
	for name := range r.graph.Groups {
		if !r.graph.CanInlineGroup(name) {
			out = append(out, section{Kind: "group", Name: name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Kind == "event" && out[j].Kind == "group"
	})
	return out
}

func (r *Renderer) renderSection(s section) (template.HTML, error) {
	var b strings.Builder
	var err error
	switch s.Kind {
	case "event":
		r.writeAnchor(&b, "event", s.Name)
		b.WriteString("<div class=\"indent\">\n")
		err = r.writeEvent(&b, s.Name)
	case "group":
		r.writeAnchor(&b, "list", s.Name)
		b.WriteString("<div class=\"indent\">\n")
		err = r.writeGroup(&b, s.Name)
	default:
		err = fmt.Errorf("unknown section kind %q", s.Kind)
	}
	if err != nil {
		return "", err
	}
	b.WriteString("</div>\n")
	return template.HTML(b.String()), nil
}

func (r *Renderer) renderShipSection(name string) (template.HTML, error) {
	var b strings.Builder
	r.writeAnchor(&b, "ship", name)
	b.WriteString("<div class=\"indent\">\n")
	if err := r.writeShip(&b, name); err != nil {
		return "", err
	}
	b.WriteString("</div>\n")
	return template.HTML(b.String()), nil
}

func (r *Renderer) writeAnchor(b *strings.Builder, kind, key string) {
	anchor := kind + "-" + key
	r.anchors[anchor] = true
	fmt.Fprintf(b, "<h2 id=\"%s\">%s</h2>\n", html.EscapeString(anchor), html.EscapeString(key))
}

func (r *Renderer) writeEvent(b *strings.Builder, id string) error {
	ev, ok := r.graph.Events[id]
	if !ok {
		return fmt.Errorf("reference to undefined event %s", id)
	}
	if r.printedEvents[id] {
		r.logger.Warn("Event rendered more than once", "event", id)
	}
	r.printedEvents[id] = true

	// The arrival text of sub-events without a real decision is
	// clutter; it is hidden behind the settings toggle instead.
	if r.graph.Roots[id] || len(ev.Choices) >= 2 {
		r.writeText(b, ev)
	} else if len(ev.Texts) > 0 {
		b.WriteString("<div class=\"inner\">")
		r.writeText(b, ev)
		b.WriteString("</div>\n")
	}

	if len(ev.Actions) > 0 {
		b.WriteString("<ul class=\"result\">\n")
		for _, action := range ev.Actions {
			b.WriteString("<li>")
			b.WriteString(action)
			b.WriteString("\n")
		}
		b.WriteString("</ul>\n")
	}

	if len(ev.Choices) > 0 {
		b.WriteString("<ol class=\"choice\">\n")
		for _, choice := range ev.Choices {
			if choice.Blue {
				b.WriteString("<li><em class=\"blue\">")
			} else {
				b.WriteString("<li><em>")
			}
			b.WriteString(html.EscapeString(choice.Label))
			b.WriteString("</em>\n<div>\n")
			if choice.Target != "" {
				if err := r.gotoGroupOrEvent(b, choice.Target); err != nil {
					return err
				}
			}
			b.WriteString("</div>\n")
		}
		b.WriteString("</ol>\n")
	}
	return nil
}

func (r *Renderer) writeText(b *strings.Builder, ev *eventgraph.Event) {
	switch {
	case ev.TextList:
		b.WriteString("<ul class=\"texts\">\n")
		for _, text := range ev.Texts {
			b.WriteString("<li>")
			b.WriteString(html.EscapeString(text))
			b.WriteString("\n")
		}
		b.WriteString("</ul>\n")
	case len(ev.Texts) == 1:
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(ev.Texts[0]))
		b.WriteString("</p>\n")
	}
}

func (r *Renderer) writeGroup(b *strings.Builder, id string) error {
	entries, ok := r.graph.Groups[id]
	if !ok {
		return fmt.Errorf("reference to undefined event list %s", id)
	}
	if r.printedGroups[id] {
		r.logger.Warn("Event list rendered more than once", "list", id)
	}
	r.printedGroups[id] = true

	total := 0
	for _, entry := range entries {
		total += entry.Weight
	}

	b.WriteString("<ul class=\"random\">\n")
	for _, entry := range entries {
		fmt.Fprintf(b, "<li> %d/%d\n", entry.Weight, total)
		if err := r.gotoEventOrGroup(b, entry.Target); err != nil {
			return err
		}
	}
	b.WriteString("</ul>\n")
	return nil
}

func (r *Renderer) writeShip(b *strings.Builder, id string) error {
	ship, ok := r.graph.Ships[id]
	if !ok {
		return fmt.Errorf("reference to undefined ship %s", id)
	}
	if r.printedShips[id] {
		r.logger.Warn("Ship rendered more than once", "ship", id)
	}
	r.printedShips[id] = true

	cases := []struct {
		target string
		msg    string
	}{
		{ship.Destroyed, "You destroy the enemy ship"},
		{ship.DeadCrew, "You kill the enemy crew"},
		{ship.Gotaway, "The enemy ship escaped"},
		{ship.Surrender, "The enemy ship offers to surrender"},
	}

	b.WriteString("<ul class=\"fight\">\n")
	for _, c := range cases {
		if c.target == "" {
			continue
		}
		fmt.Fprintf(b, "<li><em>%s</em>\n<div>\n", html.EscapeString(c.msg))
		if err := r.gotoGroupOrEvent(b, c.target); err != nil {
			return err
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</ul>\n")
	return nil
}

func (r *Renderer) gotoURL(b *strings.Builder, url string) {
	b.WriteString("<ul class=\"result\"><li>Go to ")
	b.WriteString(url)
	b.WriteString("</ul>\n")
}

// gotoGroupOrEvent follows a reference that resolves group-first
// (choice targets and ship fight branches).
func (r *Renderer) gotoGroupOrEvent(b *strings.Builder, name string) error {
	if _, ok := r.graph.Groups[name]; ok {
		if r.graph.CanInlineGroup(name) {
			return r.writeGroup(b, name)
		}
		r.gotoURL(b, r.graph.GroupLink(name))
		return nil
	}
	if _, ok := r.graph.Events[name]; ok {
		if r.graph.CanInlineEvent(name) {
			return r.writeEvent(b, name)
		}
		r.gotoURL(b, r.graph.EventLink(name))
		return nil
	}
	return fmt.Errorf("reference to undefined event %s", name)
}

// gotoEventOrGroup follows a reference that resolves event-first
// (event list entries).
func (r *Renderer) gotoEventOrGroup(b *strings.Builder, name string) error {
	if _, ok := r.graph.Events[name]; ok {
		if r.graph.CanInlineEvent(name) {
			return r.writeEvent(b, name)
		}
		r.gotoURL(b, r.graph.EventLink(name))
		return nil
	}
	if _, ok := r.graph.Groups[name]; ok {
		if r.graph.CanInlineGroup(name) {
			return r.writeGroup(b, name)
		}
		r.gotoURL(b, r.graph.GroupLink(name))
		return nil
	}
	return fmt.Errorf("reference to undefined event %s", name)
}

// ReportProblems logs events, lists, and ships that never made it
// onto the page, plus links whose anchor does not exist, and returns
// how many findings there were. Call it after Render.
func (r *Renderer) ReportProblems() int {
	findings := 0

	for _, name := range sortedKeys(r.graph.Events) {
		// Anonymous events only exist inline; an unprinted one just
		// means its parent was a debug event.
		if strings.HasPrefix(name, "evt-") {
			continue
		}
		if !r.printedEvents[name] {
			r.logger.Warn("Event missing from the page", "event", name)
			findings++
		}
	}
	for _, name := range sortedKeys(r.graph.Groups) {
		if !r.printedGroups[name] {
			r.logger.Warn("Event list missing from the page", "list", name)
			findings++
		}
	}
	for _, name := range sortedKeys(r.graph.Ships) {
		if !r.printedShips[name] {
			r.logger.Warn("Ship missing from the page", "ship", name)
			findings++
		}
	}

	var broken []string
	for anchor := range r.graph.LinkTargets {
		if !r.anchors[anchor] {
			broken = append(broken, anchor)
		}
	}
	sort.Strings(broken)
	for _, anchor := range broken {
		r.logger.Warn("Broken link", "anchor", anchor)
		findings++
	}
	return findings
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
