package eventgraph

import "strings"

// Parent counting decides which nodes can be rendered inline: a node
// referenced by exactly one parent reads better nested under it than
// as a separate section the reader has to jump to.

func (g *Graph) computeNesting() {
	for _, ev := range g.Events {
		for _, choice := range ev.Choices {
			// Choice targets resolve in the group namespace first.
			switch {
			case g.Groups[choice.Target] != nil:
				g.GroupParents[choice.Target]++
			case g.Events[choice.Target] != nil:
				g.EventParents[choice.Target]++
			}
		}
		if ev.Fight != "" {
			g.ShipParents[ev.Fight]++
		}
	}

	for _, entries := range g.Groups {
		for _, entry := range entries {
			// Group entries resolve in the event namespace first.
			switch {
			case g.Events[entry.Target] != nil:
				g.EventParents[entry.Target]++
			case g.Groups[entry.Target] != nil:
				g.GroupParents[entry.Target]++
			}
		}
	}

	for _, ship := range g.Ships {
		for _, target := range []string{ship.Destroyed, ship.DeadCrew, ship.Gotaway, ship.Surrender} {
			if target == "" {
				continue
			}
			switch {
			case g.Groups[target] != nil:
				g.GroupParents[target]++
			case g.Events[target] != nil:
				g.EventParents[target]++
			}
		}
	}
}

// CanInlineEvent reports whether the event should be rendered nested
// inside its referencing parent instead of as a top-level section.
// Anonymous events are always inlined; named events only when they
// have exactly one parent and are neither roots nor quest targets.
func (g *Graph) CanInlineEvent(name string) bool {
	if strings.HasPrefix(name, "evt-") {
		return true
	}
	return g.EventParents[name] == 1 && !g.Roots[name] && !g.QuestEvents[name]
}

// CanInlineGroup is the event-list counterpart of CanInlineEvent.
func (g *Graph) CanInlineGroup(name string) bool {
	return g.GroupParents[name] == 1 && !g.QuestGroups[name]
}
