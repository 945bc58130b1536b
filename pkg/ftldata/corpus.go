package ftldata

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxXMLSize caps how much of a single data file we are willing to
// parse. The real game files are a few hundred KB each.
const maxXMLSize = 50 * 1024 * 1024

// Corpus holds every node of interest from a data directory, merged
// across files. Slices keep the per-file order (files are visited in
// sorted order) so that downstream processing is deterministic.
type Corpus struct {
	Events    []EventNode
	Groups    []EventListNode
	Ships     []ShipNode
	TextLists map[string][]TextNode

	// Translations maps <text name=...> keys to English strings.
	Translations map[string]string

	// BlueprintNames maps blueprint ids to display titles. It is
	// pre-seeded with the hardcoded blueprint list descriptions.
	BlueprintNames map[string]string

	// Sectors and BossEvents come from sector_data.xml and
	// events_boss.xml and drive root-event discovery.
	Sectors    []SectorDescription
	BossEvents []string

	logger *slog.Logger
}

// LoadDir parses every *.xml file in dir into a single Corpus. Files
// are read in sorted order. Any I/O or XML error is fatal; so are
// duplicate translation keys, text lists, or blueprint names.
func LoadDir(logger *slog.Logger, dir string) (*Corpus, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan data directory: %w", err)
	}
	if len(paths) == 0 {
		if _, statErr := os.Stat(dir); statErr != nil {
			return nil, fmt.Errorf("failed to read data directory: %w", statErr)
		}
		return nil, fmt.Errorf("no xml files found in %s", dir)
	}
	sort.Strings(paths)

	c := &Corpus{
		TextLists:      make(map[string][]TextNode),
		Translations:   make(map[string]string),
		BlueprintNames: make(map[string]string),
		logger:         logger,
	}
	for k, v := range BlueprintListName {
		c.BlueprintNames[k] = v
	}

	var blueprints []BlueprintNode
	for _, path := range paths {
		if err := c.loadFile(path, &blueprints); err != nil {
			return nil, err
		}
	}

	// Blueprint titles may reference translation entries from files
	// that sort after blueprints.xml, so resolve them only after the
	// whole directory is in.
	for _, bp := range blueprints {
		if bp.Name == "" || bp.Title == nil {
			continue
		}
		if _, ok := c.BlueprintNames[bp.Name]; ok {
			return nil, fmt.Errorf("duplicate blueprint %s", bp.Name)
		}
		title, err := c.Translate(bp.Title)
		if err != nil {
			return nil, fmt.Errorf("blueprint %s: %w", bp.Name, err)
		}
		c.BlueprintNames[bp.Name] = title
	}

	logger.Info("Loaded data directory",
		"files", len(paths),
		"events", len(c.Events),
		"groups", len(c.Groups),
		"ships", len(c.Ships),
		"translations", len(c.Translations))
	return c, nil
}

// loadFile decodes the children of the file's root element. Unknown
// top-level tags are skipped here; the schema audit reports on the
// ones inside nodes we do care about.
func (c *Corpus) loadFile(path string, blueprints *[]BlueprintNode) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	dec := newDecoder(io.LimitReader(f, maxXMLSize))
	base := filepath.Base(path)

	// Advance past the root element; the interesting nodes are its
	// direct children.
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if _, ok := tok.(xml.StartElement); ok {
			break
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if err := c.loadElement(dec, se, base, blueprints); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return nil
}

func (c *Corpus) loadElement(dec *xml.Decoder, se xml.StartElement, base string, blueprints *[]BlueprintNode) error {
	switch se.Name.Local {
	case "event":
		var ev EventNode
		if err := dec.DecodeElement(&ev, &se); err != nil {
			return err
		}
		c.Events = append(c.Events, ev)
		if base == "events_boss.xml" && ev.Name != "" {
			c.BossEvents = append(c.BossEvents, ev.Name)
		}
	case "eventList":
		var gr EventListNode
		if err := dec.DecodeElement(&gr, &se); err != nil {
			return err
		}
		c.Groups = append(c.Groups, gr)
	case "ship":
		var sh ShipNode
		if err := dec.DecodeElement(&sh, &se); err != nil {
			return err
		}
		c.Ships = append(c.Ships, sh)
	case "textList":
		var tl TextListNode
		if err := dec.DecodeElement(&tl, &se); err != nil {
			return err
		}
		if _, ok := c.TextLists[tl.Name]; ok {
			return fmt.Errorf("duplicate textList %s", tl.Name)
		}
		c.TextLists[tl.Name] = tl.Texts
	case "text":
		var tn TextNode
		if err := dec.DecodeElement(&tn, &se); err != nil {
			return err
		}
		if tn.Name == "" {
			return nil
		}
		if _, ok := c.Translations[tn.Name]; ok {
			return fmt.Errorf("duplicate translation key %s", tn.Name)
		}
		c.Translations[tn.Name] = tn.Value
	case "augBlueprint", "droneBlueprint", "weaponBlueprint":
		var bp BlueprintNode
		if err := dec.DecodeElement(&bp, &se); err != nil {
			return err
		}
		*blueprints = append(*blueprints, bp)
	case "sectorDescription":
		var sd SectorDescription
		if err := dec.DecodeElement(&sd, &se); err != nil {
			return err
		}
		c.Sectors = append(c.Sectors, sd)
	default:
		if err := dec.Skip(); err != nil {
			return err
		}
	}
	return nil
}

// newDecoder returns a strict decoder with entity expansion disabled.
func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = make(map[string]string)
	return dec
}

// Translate resolves a <text> node to its English string. Inline text
// wins; otherwise the id is looked up in the translation table, and a
// load reference resolves through the named text list (the entries
// are interchangeable, so the first one stands in for all of them).
// A node with none of the three renders as "(no text)".
func (c *Corpus) Translate(t *TextNode) (string, error) {
	if t == nil {
		return "(no text)", nil
	}
	if strings.TrimSpace(t.Value) != "" {
		return t.Value, nil
	}
	if t.ID != "" {
		msg, ok := c.Translations[t.ID]
		if !ok {
			return "", fmt.Errorf("unknown translation key %s", t.ID)
		}
		return msg, nil
	}
	if t.Load != "" {
		texts, ok := c.TextLists[t.Load]
		if !ok || len(texts) == 0 {
			return "", fmt.Errorf("unknown text list %s", t.Load)
		}
		return c.Translate(&texts[0])
	}
	return "(no text)", nil
}

// BlueprintTitle returns the display title for a blueprint id.
func (c *Corpus) BlueprintTitle(id string) (string, error) {
	name, ok := c.BlueprintNames[id]
	if !ok {
		return "", fmt.Errorf("unknown blueprint %s", id)
	}
	return name, nil
}
