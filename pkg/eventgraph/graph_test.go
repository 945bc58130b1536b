package eventgraph

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hugomg/ftl-cheatsheet/pkg/ftldata"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// buildGraph parses the fixture files and builds a graph from them.
func buildGraph(t *testing.T, files map[string]string) *Graph {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	corpus, err := ftldata.LoadDir(testLogger(), dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	g, err := Build(testLogger(), corpus, nil, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

// buildGraphErr parses a single fixture file and returns the Build
// error, for tests exercising rejection paths.
func buildGraphErr(t *testing.T, content string) error {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "events.xml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	corpus, err := ftldata.LoadDir(testLogger(), dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	_, err = Build(testLogger(), corpus, nil, nil)
	return err
}

func TestBuild(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"events.xml": `<FTL>
			<event name="PIRATE_ATTACK">
				<text>A pirate hails you.</text>
				<ship load="PIRATE" hostile="true"/>
				<choice hidden="true" req="shields" lvl="2">
					<text>Overload the shields.</text>
					<event>
						<text>They flee.</text>
						<autoReward level="MED">standard</autoReward>
					</event>
				</choice>
				<choice>
					<text>Attack. [ Missiles: -1 ]</text>
					<event load="FIGHT_ON"/>
				</choice>
			</event>
			<event name="FIGHT_ON">
				<damage amount="2"/>
			</event>
			<ship name="PIRATE">
				<destroyed>
					<text>The pirate ship breaks apart.</text>
					<autoReward level="HIGH">standard</autoReward>
				</destroyed>
				<surrender load="FIGHT_ON"/>
			</ship>
		</FTL>`,
	})

	ev := g.Events["PIRATE_ATTACK"]
	if ev == nil {
		t.Fatal("PIRATE_ATTACK missing from graph")
	}
	if ev.Fight != "PIRATE" {
		t.Errorf("Fight = %q, want PIRATE", ev.Fight)
	}
	if len(ev.Texts) != 1 || ev.Texts[0] != "A pirate hails you." {
		t.Errorf("Texts = %v", ev.Texts)
	}
	if len(ev.Choices) != 2 {
		t.Fatalf("got %d choices, want 2", len(ev.Choices))
	}

	blue := ev.Choices[0]
	if !blue.Blue {
		t.Error("first choice should be blue")
	}
	if want := "(shields ≥ 2) Overload the shields."; blue.Label != want {
		t.Errorf("Label = %q, want %q", blue.Label, want)
	}
	if !strings.HasPrefix(blue.Target, "evt-") {
		t.Errorf("anonymous outcome id = %q", blue.Target)
	}
	if g.Events[blue.Target] == nil {
		t.Errorf("anonymous outcome %s not in graph", blue.Target)
	}

	plain := ev.Choices[1]
	if plain.Blue {
		t.Error("second choice should not be blue")
	}
	if want := "Attack."; plain.Label != want {
		t.Errorf("Label = %q, want %q", plain.Label, want)
	}
	if plain.Target != "FIGHT_ON" {
		t.Errorf("Target = %q, want FIGHT_ON", plain.Target)
	}

	ship := g.Ships["PIRATE"]
	if ship == nil {
		t.Fatal("PIRATE missing from graph")
	}
	if !strings.HasPrefix(ship.Destroyed, "evt-") {
		t.Errorf("Destroyed = %q, want anonymous id", ship.Destroyed)
	}
	if ship.Surrender != "FIGHT_ON" {
		t.Errorf("Surrender = %q, want FIGHT_ON", ship.Surrender)
	}
	if ship.DeadCrew != "" || ship.Gotaway != "" {
		t.Errorf("unexpected branches: deadCrew=%q gotaway=%q", ship.DeadCrew, ship.Gotaway)
	}

	if !g.LinkTargets["ship-PIRATE"] {
		t.Error("ship link target not recorded")
	}
}

func TestChoiceLabels(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"events.xml": `<FTL>
			<event name="TARGET"><text>Done.</text></event>
			<event name="LABELS">
				<text>Pick one.</text>
				<choice hidden="true" req="engines">
					<text>(Engines) Dodge the volley.</text>
					<event load="TARGET"/>
				</choice>
				<choice hidden="true" req="pilot" blue="false">
					<text>Not blue after all.</text>
					<event load="TARGET"/>
				</choice>
				<choice req="weapons" min_level="2" max_lvl="4">
					<text>(Weapons) Fire a warning shot.</text>
					<event load="TARGET"/>
				</choice>
			</event>
		</FTL>`,
	})

	choices := g.Events["LABELS"].Choices
	if len(choices) != 3 {
		t.Fatalf("got %d choices, want 3", len(choices))
	}

	// A plain requirement keeps its label verbatim.
	if want := "(Engines) Dodge the volley."; choices[0].Label != want {
		t.Errorf("Label = %q, want %q", choices[0].Label, want)
	}
	if !choices[0].Blue {
		t.Error("requirement with hidden=true should be blue")
	}

	if choices[1].Blue {
		t.Error(`blue="false" should win over the requirement`)
	}

	// A min/max requirement is spelled out and replaces the
	// parenthesized label.
	if want := "(2 ≤ weapons ≤ 4) Fire a warning shot."; choices[2].Label != want {
		t.Errorf("Label = %q, want %q", choices[2].Label, want)
	}
	if choices[2].Blue {
		t.Error("visible choice should not be blue")
	}
}

func TestGroupWeights(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"events.xml": `<FTL>
			<eventList name="LOOT">
				<event><autoReward level="HIGH">scrap</autoReward></event>
				<event><autoReward level="HIGH">scrap</autoReward></event>
				<event><text>Nothing of value here.</text></event>
			</eventList>
		</FTL>`,
	})

	entries := g.Groups["LOOT"]
	if len(entries) != 2 {
		t.Fatalf("got %d entries after merging, want 2: %v", len(entries), entries)
	}
	if entries[0].Weight != 2 {
		t.Errorf("merged weight = %d, want 2", entries[0].Weight)
	}
	if entries[1].Weight != 1 {
		t.Errorf("distinct branch weight = %d, want 1", entries[1].Weight)
	}
}

func TestOverrideGroups(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"events.xml": `<FTL>
			<event name="OLD"><text>Original outcome.</text></event>
			<event name="NEW"><text>Replacement outcome.</text></event>
			<eventList name="BEACON">
				<event load="OLD"/>
			</eventList>
		</FTL>`,
		"events_dlc.xml": `<FTL>
			<eventList name="OVERRIDE_BEACON">
				<event load="NEW"/>
			</eventList>
		</FTL>`,
	})

	entries := g.Groups["BEACON"]
	if len(entries) != 1 || entries[0].Target != "NEW" {
		t.Errorf("BEACON = %v, want the override's entries", entries)
	}
	if _, ok := g.Groups["OVERRIDE_BEACON"]; ok {
		t.Error("OVERRIDE_BEACON should not survive as its own group")
	}
}

func TestNamespaceCollision(t *testing.T) {
	// DUAL is both an event and an event list. Choices resolve it as
	// the group, group entries as the event.
	g := buildGraph(t, map[string]string{
		"events.xml": `<FTL>
			<event name="DUAL"><text>The event flavor.</text></event>
			<eventList name="DUAL">
				<event><text>The list flavor.</text></event>
			</eventList>
			<event name="CHOOSER">
				<text>Proceed?</text>
				<choice>
					<text>Yes.</text>
					<event load="DUAL"/>
				</choice>
			</event>
			<eventList name="WRAPPER">
				<event load="DUAL"/>
			</eventList>
		</FTL>`,
	})

	if got := g.GroupParents["DUAL"]; got != 1 {
		t.Errorf("GroupParents[DUAL] = %d, want 1 (from CHOOSER)", got)
	}
	if got := g.EventParents["DUAL"]; got != 1 {
		t.Errorf("EventParents[DUAL] = %d, want 1 (from WRAPPER)", got)
	}
}

func TestCanInline(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"events.xml": `<FTL>
			<event name="ONCE"><text>Referenced once.</text></event>
			<event name="TWICE"><text>Referenced twice.</text></event>
			<event name="SIDE_QUEST"><text>The quest payoff.</text></event>
			<event name="A">
				<text>First parent.</text>
				<choice><text>Go.</text><event load="ONCE"/></choice>
				<choice><text>Go.</text><event load="TWICE"/></choice>
			</event>
			<event name="B">
				<text>Second parent.</text>
				<quest event="SIDE_QUEST"/>
				<choice><text>Go.</text><event load="TWICE"/></choice>
				<choice><text>Go.</text><event load="SIDE_QUEST"/></choice>
			</event>
		</FTL>`,
	})

	cases := []struct {
		name string
		want bool
	}{
		{"ONCE", true},
		{"TWICE", false},
		{"SIDE_QUEST", false}, // quest targets keep their own section
		{"evt-999", true},     // anonymous ids always inline
		{"A", false},          // no parents at all
	}
	for _, tc := range cases {
		if got := g.CanInlineEvent(tc.name); got != tc.want {
			t.Errorf("CanInlineEvent(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
	if !g.QuestEvents["SIDE_QUEST"] {
		t.Error("SIDE_QUEST not marked as a quest target")
	}
}

func TestResolveRoots(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"events.xml": `<FTL>
			<event name="START_BEACON"><text>You are here.</text></event>
			<event name="NEUTRAL"><text>Quiet beacon.</text></event>
			<event name="PIRATE"><text>Not so quiet.</text></event>
			<eventList name="SECTOR_LIST">
				<event load="NEUTRAL"/>
				<event load="PIRATE"/>
			</eventList>
		</FTL>`,
		"events_boss.xml": `<FTL>
			<event name="BOSS_FIGHT"><text>The flagship looms.</text></event>
		</FTL>`,
		"sector_data.xml": `<FTL>
			<sectorDescription name="CIVILIAN">
				<startEvent>START_BEACON</startEvent>
				<event name="SECTOR_LIST"/>
			</sectorDescription>
		</FTL>`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	corpus, err := ftldata.LoadDir(testLogger(), dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	g, err := Build(testLogger(), corpus, []string{"PIRATE"}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, want := range []string{"START_BEACON", "NEUTRAL", "PIRATE", "BOSS_FIGHT"} {
		if !g.Roots[want] {
			t.Errorf("%s should be a root", want)
		}
	}
	// Built-in roots absent from the data set are skipped, not added.
	if g.Roots["NO_FUEL"] {
		t.Error("NO_FUEL is not in this data set")
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		xml  string
		want string
	}{
		{
			"DuplicateEvent",
			`<FTL>
				<event name="TWIN"><text>One.</text></event>
				<event name="TWIN"><text>Two.</text></event>
			</FTL>`,
			"duplicate event TWIN",
		},
		{
			"DuplicateGroup",
			`<FTL>
				<eventList name="TWIN"><event><text>One.</text></event></eventList>
				<eventList name="TWIN"><event><text>Two.</text></event></eventList>
			</FTL>`,
			"duplicate event list TWIN",
		},
		{
			"UnknownQuestTarget",
			`<FTL>
				<event name="Q"><quest event="NOWHERE"/></event>
			</FTL>`,
			"quest marker for unknown event",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := buildGraphErr(t, tc.xml)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Build() error = %v, want %q", err, tc.want)
			}
		})
	}
}
