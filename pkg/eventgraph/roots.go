package eventgraph

import "strings"

// Root events are the entry points of the event graph: everything not
// reachable from a root is a leftover test or debug event.

// builtinRootEvents are events the game engine triggers directly
// rather than through a beacon's event list.
var builtinRootEvents = []string{
	// Triggered by game state rather than arrival at a beacon.
	"STALEMATE_SURRENDER",
	"CREW_STUCK",
	"FUEL_ESCAPE_SUN",
	"FUEL_ESCAPE_STORM",
	"FUEL_ESCAPE_ASTEROIDS",
	"AUGMENT_FULL",
	"EQUIP_FULL",
	"START_DEMO",
	"START_GAME",
	"TUTORIAL_START",
	"TUTORIAL_MISSILE",
	"TUTORIAL_ENEMY",
	"TOO_MANY_CREW",

	// Structural events of every sector.
	"START_BEACON",
	"FINISH_BEACON",
	"FINISH_BEACON_NEBULA",
	"FLEET_EASY",
	"FLEET_EASY_DLC",
	"FLEET_EASY_BEACON",
	"FLEET_EASY_BEACON_DLC",
	"FLEET_HARD",
	"NOTHING",
	"FEDERATION_BASE",

	// Out-of-fuel events.
	"NO_FUEL_FLEET",
	"NO_FUEL_FLEET_DLC",
	"NO_FUEL",
	"NO_FUEL_DISTRESS",

	// The parser misses this one because of a commented-out event
	// right next to it in the data files.
	"DOCK_DRONE_SALESMAN",
}

// builtinRootGroups are event lists the DLC wires in outside of
// sector_data.xml.
var builtinRootGroups = []string{
	"HOSTILE1",
	"HOSTILE2",
}

// resolveRoots marks the built-in roots, the sector start events and
// sector event lists, the boss events, and any extra names from the
// configuration. Names that resolve to a group mark every branch of
// the group instead. Names absent from this corpus are skipped with a
// debug log so that partial data sets (mods, test fixtures) still
// work.
func (g *Graph) resolveRoots(extraEvents, extraGroups []string) {
	seen := make(map[string]bool)
	for _, name := range builtinRootEvents {
		g.addRoot(name, seen)
	}
	for _, name := range builtinRootGroups {
		g.addRoot(name, seen)
	}
	for _, sector := range g.corpus.Sectors {
		if start := strings.TrimSpace(sector.StartEvent); start != "" {
			g.addRoot(start, seen)
		}
		for _, list := range sector.Events {
			g.addRoot(list.Name, seen)
		}
	}
	for _, name := range g.corpus.BossEvents {
		g.addRoot(name, seen)
	}
	for _, name := range extraEvents {
		g.addRoot(name, seen)
	}
	for _, name := range extraGroups {
		g.addRoot(name, seen)
	}
}

// addRoot resolves a root name event-first. seen guards against event
// lists that reference each other in a cycle.
func (g *Graph) addRoot(name string, seen map[string]bool) {
	if _, ok := g.Events[name]; ok {
		g.Roots[name] = true
		return
	}
	if entries, ok := g.Groups[name]; ok {
		if seen[name] {
			return
		}
		seen[name] = true
		for _, entry := range entries {
			g.addRoot(entry.Target, seen)
		}
		return
	}
	g.logger.Debug("Root event not present in this data set", "name", name)
}
