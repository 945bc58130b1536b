package ftldata

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeDataDir materializes a fixture data directory under t.TempDir.
func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"text_events.xml": `<FTL>
			<text name="greeting">Hello there</text>
			<text name="farewell">Goodbye</text>
		</FTL>`,
		"events.xml": `<FTL>
			<textList name="VARIANTS">
				<text>Variant one</text>
				<text>Variant two</text>
			</textList>
			<event name="GREETING">
				<text id="greeting"/>
			</event>
			<eventList name="STUFF">
				<event load="GREETING"/>
			</eventList>
			<ship name="PIRATE">
				<destroyed load="GREETING"/>
			</ship>
		</FTL>`,
		"blueprints.xml": `<FTL>
			<weaponBlueprint name="LASER_BURST_1">
				<title id="farewell"/>
			</weaponBlueprint>
			<augBlueprint name="AUG_SCALES">
				<title>Rock Plating</title>
			</augBlueprint>
		</FTL>`,
	})

	c, err := LoadDir(testLogger(), dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if len(c.Events) != 1 || c.Events[0].Name != "GREETING" {
		t.Errorf("expected one event GREETING, got %+v", c.Events)
	}
	if len(c.Groups) != 1 || c.Groups[0].Name != "STUFF" {
		t.Errorf("expected one eventList STUFF, got %+v", c.Groups)
	}
	if len(c.Ships) != 1 || c.Ships[0].Name != "PIRATE" {
		t.Errorf("expected one ship PIRATE, got %+v", c.Ships)
	}
	if got := c.Translations["greeting"]; got != "Hello there" {
		t.Errorf("Translations[greeting] = %q", got)
	}
	if texts := c.TextLists["VARIANTS"]; len(texts) != 2 {
		t.Errorf("expected 2 entries in VARIANTS, got %d", len(texts))
	}

	// Blueprint titles resolve through the translation table even
	// though text_events.xml sorts after blueprints.xml.
	if got, err := c.BlueprintTitle("LASER_BURST_1"); err != nil || got != "Goodbye" {
		t.Errorf("BlueprintTitle(LASER_BURST_1) = %q, %v", got, err)
	}
	if got, err := c.BlueprintTitle("AUG_SCALES"); err != nil || got != "Rock Plating" {
		t.Errorf("BlueprintTitle(AUG_SCALES) = %q, %v", got, err)
	}
	// Hardcoded blueprint-list descriptions are pre-seeded.
	if got, err := c.BlueprintTitle("WEAPONS_CRYSTAL"); err != nil || got != "a crystal weapon" {
		t.Errorf("BlueprintTitle(WEAPONS_CRYSTAL) = %q, %v", got, err)
	}
}

func TestLoadDirErrors(t *testing.T) {
	t.Run("MissingDirectory", func(t *testing.T) {
		if _, err := LoadDir(testLogger(), filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected an error for a missing directory")
		}
	})

	t.Run("MalformedXML", func(t *testing.T) {
		dir := writeDataDir(t, map[string]string{
			"events.xml": `<FTL><event name="BROKEN"></FTL>`,
		})
		if _, err := LoadDir(testLogger(), dir); err == nil {
			t.Error("expected an error for malformed XML")
		}
	})

	t.Run("DuplicateTranslation", func(t *testing.T) {
		dir := writeDataDir(t, map[string]string{
			"text_misc.xml": `<FTL>
				<text name="dup">one</text>
				<text name="dup">two</text>
			</FTL>`,
		})
		_, err := LoadDir(testLogger(), dir)
		if err == nil || !strings.Contains(err.Error(), "duplicate translation key") {
			t.Errorf("expected duplicate translation error, got %v", err)
		}
	})

	t.Run("DuplicateBlueprint", func(t *testing.T) {
		dir := writeDataDir(t, map[string]string{
			"blueprints.xml": `<FTL>
				<augBlueprint name="AUG_X"><title>One</title></augBlueprint>
				<droneBlueprint name="AUG_X"><title>Two</title></droneBlueprint>
			</FTL>`,
		})
		_, err := LoadDir(testLogger(), dir)
		if err == nil || !strings.Contains(err.Error(), "duplicate blueprint") {
			t.Errorf("expected duplicate blueprint error, got %v", err)
		}
	})
}

func TestTranslate(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"text_misc.xml": `<FTL>
			<text name="key">Translated</text>
			<textList name="ALTS">
				<text id="key"/>
				<text>Second alternative</text>
			</textList>
			<event name="DUMMY"><text>x</text></event>
		</FTL>`,
	})
	c, err := LoadDir(testLogger(), dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	cases := []struct {
		name string
		node *TextNode
		want string
	}{
		{"Nil", nil, "(no text)"},
		{"Inline", &TextNode{Value: "Inline wins"}, "Inline wins"},
		{"ByID", &TextNode{ID: "key"}, "Translated"},
		{"ByLoadUsesFirstEntry", &TextNode{Load: "ALTS"}, "Translated"},
		{"Empty", &TextNode{}, "(no text)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Translate(tc.node)
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Translate() = %q, want %q", got, tc.want)
			}
		})
	}

	t.Run("UnknownID", func(t *testing.T) {
		if _, err := c.Translate(&TextNode{ID: "missing"}); err == nil {
			t.Error("expected an error for an unknown translation key")
		}
	})
	t.Run("UnknownList", func(t *testing.T) {
		if _, err := c.Translate(&TextNode{Load: "missing"}); err == nil {
			t.Error("expected an error for an unknown text list")
		}
	})
}

func TestBossEventsAndSectors(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"events_boss.xml": `<FTL>
			<event name="BOSS_1"><text>The flagship.</text></event>
		</FTL>`,
		"sector_data.xml": `<FTL>
			<sectorDescription name="CIVILIAN">
				<startEvent>START_CIVILIAN</startEvent>
				<event name="NEUTRAL_CIVILIAN"/>
			</sectorDescription>
		</FTL>`,
	})
	c, err := LoadDir(testLogger(), dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if len(c.BossEvents) != 1 || c.BossEvents[0] != "BOSS_1" {
		t.Errorf("BossEvents = %v", c.BossEvents)
	}
	if len(c.Sectors) != 1 {
		t.Fatalf("Sectors = %v", c.Sectors)
	}
	if c.Sectors[0].StartEvent != "START_CIVILIAN" {
		t.Errorf("StartEvent = %q", c.Sectors[0].StartEvent)
	}
	if len(c.Sectors[0].Events) != 1 || c.Sectors[0].Events[0].Name != "NEUTRAL_CIVILIAN" {
		t.Errorf("sector events = %v", c.Sectors[0].Events)
	}
}
