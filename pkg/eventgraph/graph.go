package eventgraph

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/hugomg/ftl-cheatsheet/pkg/ftldata"
)

// Event is one node of the graph: the message shown on arrival, the
// list of outcomes (pre-rendered, escaped HTML fragments, one per
// bullet), the player choices, and the ship id when the event leaves
// the player in a fight.
type Event struct {
	Texts    []string
	TextList bool
	Actions  []string
	Choices  []Choice
	Fight    string
}

// Choice is one numbered option of an event. Label already carries the
// requirement prefix; Blue marks blue (conditional) options. Target is
// the id of the follow-up event or group, empty for the rare data bugs
// where a choice has no outcome.
type Choice struct {
	Label  string
	Blue   bool
	Target string
}

// equal reports whether two events are structurally identical. Used to
// merge duplicated event-list branches.
func (e *Event) equal(o *Event) bool {
	return e.TextList == o.TextList &&
		e.Fight == o.Fight &&
		slices.Equal(e.Texts, o.Texts) &&
		slices.Equal(e.Actions, o.Actions) &&
		slices.Equal(e.Choices, o.Choices)
}

// GroupEntry is one branch of an event group with its relative weight.
type GroupEntry struct {
	Weight int
	Target string
}

// Ship holds the follow-up event ids for the four ways a fight can
// end. Empty means the branch does not exist for this ship.
type Ship struct {
	Destroyed string
	DeadCrew  string
	Gotaway   string
	Surrender string
}

// Graph is the fully linked event graph for one data directory.
//
// Event ids and group ids live in separate namespaces that can collide
// (NEBULA_PIRATE is both). Context decides: inside a group the event
// namespace has priority, elsewhere the group namespace does.
type Graph struct {
	Events map[string]*Event
	Groups map[string][]GroupEntry
	Ships  map[string]*Ship

	// QuestEvents and QuestGroups are quest-marker targets; they keep
	// their own section even when referenced only once.
	QuestEvents map[string]bool
	QuestGroups map[string]bool

	// Roots are events reachable outside the normal beacon flow.
	Roots map[string]bool

	// Parent counts drive inlining decisions.
	EventParents map[string]int
	GroupParents map[string]int
	ShipParents  map[string]int

	// LinkTargets collects every anchor an emitted cross link points
	// at, for the broken-link check after rendering.
	LinkTargets map[string]bool

	corpus *ftldata.Corpus
	logger *slog.Logger

	eventKeys map[string]bool
	groupKeys map[string]bool
	shipKeys  map[string]bool

	anonCount int
}

// Build constructs the graph from a corpus: every event, group, and
// ship is added, OVERRIDE_ lists are applied last, duplicated group
// branches are merged, parent counts are computed, and root events are
// resolved. extraRootEvents and extraRootGroups come from the config
// and are added on top of the built-in root set.
func Build(logger *slog.Logger, corpus *ftldata.Corpus, extraRootEvents, extraRootGroups []string) (*Graph, error) {
	g := &Graph{
		Events:       make(map[string]*Event),
		Groups:       make(map[string][]GroupEntry),
		Ships:        make(map[string]*Ship),
		QuestEvents:  make(map[string]bool),
		QuestGroups:  make(map[string]bool),
		Roots:        make(map[string]bool),
		EventParents: make(map[string]int),
		GroupParents: make(map[string]int),
		ShipParents:  make(map[string]int),
		LinkTargets:  make(map[string]bool),
		corpus:       corpus,
		logger:       logger,
		eventKeys:    make(map[string]bool),
		groupKeys:    make(map[string]bool),
		shipKeys:     make(map[string]bool),
	}

	// The full id sets are needed ahead of time: a <quest> target can
	// appear in a file we have not processed yet, and its kind decides
	// which namespace the marker links into.
	for i := range corpus.Events {
		if name := corpus.Events[i].Name; name != "" {
			g.eventKeys[name] = true
		}
	}
	for i := range corpus.Groups {
		g.groupKeys[corpus.Groups[i].Name] = true
	}
	for i := range corpus.Ships {
		g.shipKeys[corpus.Ships[i].Name] = true
	}

	for i := range corpus.Events {
		if _, err := g.addEvent(&corpus.Events[i], ""); err != nil {
			return nil, err
		}
	}

	var overrides []*ftldata.EventListNode
	for i := range corpus.Groups {
		group := &corpus.Groups[i]
		if strings.HasPrefix(group.Name, "OVERRIDE_") {
			overrides = append(overrides, group)
			continue
		}
		if err := g.addGroup(group); err != nil {
			return nil, err
		}
	}

	for i := range corpus.Ships {
		if err := g.addShip(&corpus.Ships[i]); err != nil {
			return nil, err
		}
	}

	for _, group := range overrides {
		if err := g.addGroup(group); err != nil {
			return nil, err
		}
	}

	g.canonicalizeGroups()
	g.computeNesting()
	g.resolveRoots(extraRootEvents, extraRootGroups)

	logger.Info("Built event graph",
		"events", len(g.Events),
		"groups", len(g.Groups),
		"ships", len(g.Ships),
		"roots", len(g.Roots))
	return g, nil
}

// nextAnonID names an anonymous nested event. The generated ids never
// surface in the output: anything starting with "evt-" is always
// inlined under its parent.
func (g *Graph) nextAnonID() string {
	g.anonCount++
	return fmt.Sprintf("evt-%d", g.anonCount)
}

// addEvent interprets one <event> node and returns its id. enemyShip
// is the ship the surrounding fight is against, so that a bare
// <ship hostile="true"/> in a choice outcome still counts as a fight.
func (g *Graph) addEvent(node *ftldata.EventNode, enemyShip string) (string, error) {
	if node.Load != "" {
		return node.Load, nil
	}

	ev := &Event{}
	if err := g.resolveTexts(node, ev); err != nil {
		return "", err
	}

	actions, fight, newEnemy, err := g.buildActions(node, enemyShip)
	if err != nil {
		if node.Name != "" {
			err = fmt.Errorf("event %s: %w", node.Name, err)
		}
		return "", err
	}
	ev.Actions = actions
	ev.Fight = fight

	for i := range node.Choices {
		choice, err := g.addChoice(&node.Choices[i], newEnemy)
		if err != nil {
			if node.Name != "" {
				err = fmt.Errorf("event %s: %w", node.Name, err)
			}
			return "", err
		}
		ev.Choices = append(ev.Choices, choice)
	}

	if len(ev.Actions) == 0 && len(ev.Choices) == 0 && ev.Fight == "" {
		ev.Actions = []string{"Nothing happens"}
	}

	key := node.Name
	if key == "" {
		key = g.nextAnonID()
	}
	if _, ok := g.Events[key]; ok {
		return "", fmt.Errorf("duplicate event %s", key)
	}
	g.Events[key] = ev
	return key, nil
}

// resolveTexts fills in the arrival message. A load reference expands
// to every alternative in the text list; otherwise there is a single
// message or none at all.
func (g *Graph) resolveTexts(node *ftldata.EventNode, ev *Event) error {
	if node.Text == nil {
		return nil
	}
	if node.Text.Load != "" {
		texts, ok := g.corpus.TextLists[node.Text.Load]
		if !ok {
			return fmt.Errorf("unknown text list %s", node.Text.Load)
		}
		ev.TextList = true
		for i := range texts {
			msg, err := g.corpus.Translate(&texts[i])
			if err != nil {
				return err
			}
			ev.Texts = append(ev.Texts, msg)
		}
		return nil
	}
	msg, err := g.corpus.Translate(node.Text)
	if err != nil {
		return err
	}
	ev.Texts = []string{msg}
	return nil
}

// missileCostSuffix duplicates information that already shows up in
// the choice's outcome, so it is stripped from the label.
const missileCostSuffix = "[ Missiles: -1 ]"

func (g *Graph) addChoice(node *ftldata.ChoiceNode, enemyShip string) (Choice, error) {
	text, err := g.corpus.Translate(node.Text)
	if err != nil {
		return Choice{}, err
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimSuffix(text, missileCostSuffix))

	hidden := strings.ToLower(node.Hidden)
	minLevel := node.MinRequirement()
	maxLevel := node.MaxRequirement()

	isBlue := node.Req != "" && hidden == "true" && node.Blue != "false"
	isComplex := maxLevel != "" || (minLevel != "" && minLevel != "1")

	var reqMsg string
	if node.Req != "" && isComplex {
		switch {
		case minLevel != "" && maxLevel != "":
			reqMsg = fmt.Sprintf("(%s ≤ %s ≤ %s) ", minLevel, node.Req, maxLevel)
		case minLevel != "":
			reqMsg = fmt.Sprintf("(%s ≥ %s) ", node.Req, minLevel)
		default:
			reqMsg = fmt.Sprintf("(%s ≤ %s) ", node.Req, maxLevel)
		}
	}

	// When the raw requirement is shown, a leading parenthesized label
	// like "(Improved Weapons)" just repeats it less precisely.
	if reqMsg != "" && strings.HasPrefix(text, "(") {
		if i := strings.Index(text, ")"); i >= 0 {
			text = strings.TrimLeft(text[i+1:], " ")
		}
	}

	choice := Choice{Label: reqMsg + text, Blue: isBlue}

	if node.Event != nil {
		target, err := g.addEvent(node.Event, enemyShip)
		if err != nil {
			return Choice{}, err
		}
		choice.Target = target
	} else {
		g.logger.Warn("Choice without outcome", "label", text)
	}
	return choice, nil
}

func (g *Graph) addShip(node *ftldata.ShipNode) (err error) {
	if node.Name == "" {
		return fmt.Errorf("ship without a name")
	}
	if _, ok := g.Ships[node.Name]; ok {
		return fmt.Errorf("duplicate ship %s", node.Name)
	}

	ship := &Ship{}
	branch := func(ev *ftldata.EventNode) string {
		if err != nil || ev == nil {
			return ""
		}
		var id string
		id, err = g.addEvent(ev, "")
		if err != nil {
			err = fmt.Errorf("ship %s: %w", node.Name, err)
		}
		return id
	}
	ship.Destroyed = branch(node.Destroyed)
	ship.DeadCrew = branch(node.DeadCrew)
	ship.Gotaway = branch(node.Gotaway)
	ship.Surrender = branch(node.Surrender)
	if err != nil {
		return err
	}

	g.Ships[node.Name] = ship
	return nil
}

func (g *Graph) addGroup(node *ftldata.EventListNode) error {
	var entries []GroupEntry
	for i := range node.Events {
		target, err := g.addEvent(&node.Events[i], "")
		if err != nil {
			return fmt.Errorf("event list %s: %w", node.Name, err)
		}
		entries = append(entries, GroupEntry{Weight: 1, Target: target})
	}

	key := node.Name
	if stripped, ok := strings.CutPrefix(key, "OVERRIDE_"); ok {
		key = stripped
	} else if _, exists := g.Groups[key]; exists {
		return fmt.Errorf("duplicate event list %s", key)
	}
	g.Groups[key] = entries
	return nil
}
