package ftldata

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// The audit schemas list the XML nodes this program is aware of. A tag
// or attribute outside these lists is a game-data feature we have not
// implemented yet, and gets reported once so it is not silently
// dropped from the cheatsheet.

// eventSchema maps children of <event> to their known attributes. A
// nil attribute set means the tag is recognized but not inspected.
var eventSchema = map[string][]string{
	"augment":        {"name"},
	"autoReward":     {"level"},
	"boarders":       {"min", "max", "class", "breach"},
	"choice":         {"req", "hidden", "hiiden", "blue", "lvl", "min_level", "max_lvl", "max_level", "max_group"},
	"crewMember":     {"amount", "class", "type", "id", "all_skills", "weapons", "shields", "pilot", "engines", "combat", "repair"},
	"damage":         {"amount", "system", "effect"},
	"distressBeacon": {},
	"drone":          {"name"},
	"environment":    {"type", "target"},
	"fleet":          {},
	"img":            {"back", "planet"},
	"item_modify":    {"type", "min", "max", "steal"},
	"modifyPursuit":  {"amount"},
	"quest":          {"event"},
	"removeCrew":     {"class", "clone"},
	"remove":         {"name"},
	"repair":         {},
	"reveal_map":     {},
	"secretSector":   {},
	"ship":           {"load", "hostile"},
	"status":         {"type", "target", "system", "amount"},
	"store":          {},
	"text":           {"id", "load", "planet"},
	"unlockShip":     {"id"},
	"upgrade":        {"amount", "system"},
	"weapon":         {"name"},

	// The test event GHOST_DOCK nests a bare <event> directly.
	"event": nil,
}

// shipSchema maps children of <ship> to their known attributes.
var shipSchema = map[string][]string{
	"crew":           {},
	"destroyed":      {"load"},
	"deadCrew":       {"load"},
	"escape":         {"load", "chance", "min", "max", "timer"},
	"gotaway":        {"load"},
	"surrender":      {"load", "chance", "min", "max"},
	"weaponOverride": nil,
}

// groupSchema maps children of <eventList> to their known attributes.
var groupSchema = map[string][]string{
	"event": {"load"},
}

// rawNode is a schema-free view of an element, used only by the audit.
type rawNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []rawNode  `xml:",any"`
}

// Auditor walks data files and reports tags and attributes outside the
// known schemas. Each finding is logged once per run.
type Auditor struct {
	logger    *slog.Logger
	seenTags  map[string]bool
	seenAttrs map[string]bool
	findings  int
}

// NewAuditor returns an Auditor that logs findings through logger.
func NewAuditor(logger *slog.Logger) *Auditor {
	return &Auditor{
		logger:    logger,
		seenTags:  make(map[string]bool),
		seenAttrs: make(map[string]bool),
	}
}

// Findings reports how many distinct unknown tags and attributes were
// seen so far.
func (a *Auditor) Findings() int {
	return a.findings
}

// AuditDir walks every *.xml file in dir. Parse errors are returned;
// schema findings are only logged.
func (a *Auditor) AuditDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return fmt.Errorf("failed to scan data directory: %w", err)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := a.AuditFile(path); err != nil {
			return err
		}
	}
	return nil
}

// AuditFile checks a single file against the known schemas.
func (a *Auditor) AuditFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	var root rawNode
	dec := newDecoder(io.LimitReader(f, maxXMLSize))
	if err := dec.Decode(&root); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i := range root.Children {
		child := &root.Children[i]
		switch child.XMLName.Local {
		case "event":
			a.auditEvent(child)
		case "ship":
			a.auditShip(child)
		case "eventList":
			a.auditGroup(child)
		}
	}
	return nil
}

func (a *Auditor) auditEvent(node *rawNode) {
	a.checkNode(node, eventSchema)
	for i := range node.Children {
		child := &node.Children[i]
		if child.XMLName.Local != "choice" {
			continue
		}
		for j := range child.Children {
			sub := &child.Children[j]
			if sub.XMLName.Local == "event" {
				a.auditEvent(sub)
			}
		}
	}
}

func (a *Auditor) auditShip(node *rawNode) {
	a.checkNode(node, shipSchema)
	for i := range node.Children {
		child := &node.Children[i]
		switch child.XMLName.Local {
		case "destroyed", "deadCrew", "gotaway", "surrender":
			a.auditEvent(child)
		}
	}
}

func (a *Auditor) auditGroup(node *rawNode) {
	a.checkNode(node, groupSchema)
	for i := range node.Children {
		child := &node.Children[i]
		if child.XMLName.Local == "event" {
			a.auditEvent(child)
		}
	}
}

func (a *Auditor) checkNode(parent *rawNode, schema map[string][]string) {
	for i := range parent.Children {
		child := &parent.Children[i]
		tag := child.XMLName.Local

		known, ok := schema[tag]
		if !ok {
			key := parent.XMLName.Local + "." + tag
			if !a.seenTags[key] {
				a.seenTags[key] = true
				a.findings++
				a.logger.Warn("Unknown tag", "parent", parent.XMLName.Local, "tag", tag)
			}
			continue
		}
		if known == nil {
			continue
		}
		for _, attr := range child.Attrs {
			if !contains(known, attr.Name.Local) {
				key := parent.XMLName.Local + "." + tag + "." + attr.Name.Local
				if !a.seenAttrs[key] {
					a.seenAttrs[key] = true
					a.findings++
					a.logger.Warn("Unknown attr", "parent", parent.XMLName.Local, "tag", tag, "attr", attr.Name.Local)
				}
			}
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
