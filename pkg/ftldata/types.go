package ftldata

// Presence marks an element whose mere existence carries meaning
// (e.g. <store/> or <reveal_map/>). Fields of this type are pointers
// so that a nil value means "element absent".
type Presence struct{}

// TextNode is a <text> element. Exactly one of the three sources is
// normally set: inline character data, an id into the translation
// table, or a load reference into a <textList>.
type TextNode struct {
	Name   string `xml:"name,attr"`
	ID     string `xml:"id,attr"`
	Load   string `xml:"load,attr"`
	Planet string `xml:"planet,attr"`
	Value  string `xml:",chardata"`
}

// TextListNode is a <textList>: a named set of interchangeable texts.
type TextListNode struct {
	Name  string     `xml:"name,attr"`
	Texts []TextNode `xml:"text"`
}

// EventNode is an <event> element, either a named top-level event, an
// anonymous event nested in a choice or ship branch, or (when Load is
// set) a bare reference to another event.
type EventNode struct {
	Name string `xml:"name,attr"`
	Load string `xml:"load,attr"`

	Text           *TextNode      `xml:"text"`
	Environment    *Environment   `xml:"environment"`
	Boarders       *Boarders      `xml:"boarders"`
	Remove         *NamedRef      `xml:"remove"`
	ItemModify     *ItemModify    `xml:"item_modify"`
	AutoReward     *AutoReward    `xml:"autoReward"`
	CrewMember     *CrewMember    `xml:"crewMember"`
	RemoveCrew     *RemoveCrew    `xml:"removeCrew"`
	Damage         []Damage       `xml:"damage"`
	Status         []Status       `xml:"status"`
	ModifyPursuit  *ModifyPursuit `xml:"modifyPursuit"`
	RevealMap      *Presence      `xml:"reveal_map"`
	Upgrade        *Upgrade       `xml:"upgrade"`
	Augment        *NamedRef      `xml:"augment"`
	Weapon         *NamedRef      `xml:"weapon"`
	Drone          *NamedRef      `xml:"drone"`
	Quest          *Quest         `xml:"quest"`
	UnlockShip     *UnlockShip    `xml:"unlockShip"`
	SecretSector   *Presence      `xml:"secretSector"`
	Store          *Presence      `xml:"store"`
	Ship           *ShipRef       `xml:"ship"`
	Choices        []ChoiceNode   `xml:"choice"`
	DistressBeacon *Presence      `xml:"distressBeacon"`

	// Recognized but not rendered: background fleets and images, and
	// the redundant Last Stand repair station.
	Fleet  *Presence `xml:"fleet"`
	Img    *Presence `xml:"img"`
	Repair *Presence `xml:"repair"`
}

// ChoiceNode is a <choice> inside an event. The game data spells the
// level bounds two different ways, so both attribute names are kept
// and resolved via MinRequirement/MaxRequirement.
type ChoiceNode struct {
	Req      string `xml:"req,attr"`
	Blue     string `xml:"blue,attr"`
	Hidden   string `xml:"hidden,attr"`
	Lvl      string `xml:"lvl,attr"`
	MinLevel string `xml:"min_level,attr"`
	MaxLvl   string `xml:"max_lvl,attr"`
	MaxLevel string `xml:"max_level,attr"`

	Text  *TextNode  `xml:"text"`
	Event *EventNode `xml:"event"`
}

// MinRequirement returns the lower level bound, whichever attribute
// spelled it.
func (c *ChoiceNode) MinRequirement() string {
	if c.Lvl != "" {
		return c.Lvl
	}
	return c.MinLevel
}

// MaxRequirement returns the upper level bound.
func (c *ChoiceNode) MaxRequirement() string {
	if c.MaxLvl != "" {
		return c.MaxLvl
	}
	return c.MaxLevel
}

// Environment is a beacon hazard such as an asteroid field or an
// anti-ship battery.
type Environment struct {
	Type   string `xml:"type,attr"`
	Target string `xml:"target,attr"`
}

// Boarders describes an enemy boarding party.
type Boarders struct {
	Min    int    `xml:"min,attr"`
	Max    int    `xml:"max,attr"`
	Class  string `xml:"class,attr"`
	Breach string `xml:"breach,attr"`
}

// NamedRef is any element that only carries a name attribute, such as
// <augment>, <weapon>, <drone> and <remove>.
type NamedRef struct {
	Name string `xml:"name,attr"`
}

// ItemModify lists resource payments and rewards.
type ItemModify struct {
	Steal string      `xml:"steal,attr"`
	Items []ItemRange `xml:"item"`
}

// ItemRange is one resource delta. Min and Max share a sign: both
// non-negative for a reward, both non-positive for a payment.
type ItemRange struct {
	Type string `xml:"type,attr"`
	Min  int    `xml:"min,attr"`
	Max  int    `xml:"max,attr"`
}

// AutoReward is the standard post-event reward roll.
type AutoReward struct {
	Level string `xml:"level,attr"`
	Kind  string `xml:",chardata"`
}

// CrewMember describes crew gained (positive Amount) or lost.
type CrewMember struct {
	Amount int    `xml:"amount,attr"`
	Class  string `xml:"class,attr"`
	Type   string `xml:"type,attr"`
	ID     string `xml:"id,attr"`

	AllSkills string `xml:"all_skills,attr"`
	Combat    string `xml:"combat,attr"`
	Engines   string `xml:"engines,attr"`
	Pilot     string `xml:"pilot,attr"`
	Repair    string `xml:"repair,attr"`
	Shields   string `xml:"shields,attr"`
	Weapons   string `xml:"weapons,attr"`
}

// SkillLevel pairs a skill's display name with the trained level.
type SkillLevel struct {
	Skill string
	Level string
}

// Skills returns the trained skills in the fixed display order used by
// the cheatsheet. The weapons attribute exists in the data but has no
// display name, so it is not included.
func (c *CrewMember) Skills() []SkillLevel {
	pairs := []struct{ key, val string }{
		{"all_skills", c.AllSkills},
		{"combat", c.Combat},
		{"engines", c.Engines},
		{"pilot", c.Pilot},
		{"repair", c.Repair},
		{"shields", c.Shields},
	}
	var out []SkillLevel
	for _, p := range pairs {
		if p.val != "" {
			out = append(out, SkillLevel{Skill: SkillName[p.key], Level: p.val})
		}
	}
	return out
}

// RemoveCrew describes crew lost to the event, and whether the clone
// bay can bring them back.
type RemoveCrew struct {
	Class string    `xml:"class,attr"`
	Clone string    `xml:"clone"`
	Text  *TextNode `xml:"text"`
}

// Damage is hull and/or system damage. A negative amount is a repair.
type Damage struct {
	Amount int    `xml:"amount,attr"`
	System string `xml:"system,attr"`
	Effect string `xml:"effect,attr"`
}

// Status modifies the power of a system (clear, divide, limit, loss).
type Status struct {
	Type   string `xml:"type,attr"`
	Target string `xml:"target,attr"`
	System string `xml:"system,attr"`
	Amount string `xml:"amount,attr"`
}

// ModifyPursuit advances (positive) or delays the rebel fleet.
type ModifyPursuit struct {
	Amount int `xml:"amount,attr"`
}

// Upgrade grants free levels in a system.
type Upgrade struct {
	Amount string `xml:"amount,attr"`
	System string `xml:"system,attr"`
}

// Quest places a quest marker that later loads the named event or
// event list.
type Quest struct {
	Event string `xml:"event,attr"`
}

// UnlockShip unlocks a player cruiser by numeric id.
type UnlockShip struct {
	ID string `xml:"id,attr"`
}

// ShipRef attaches an enemy ship to the event. Load names a <ship>
// definition; an empty Load inside a fight ends the fight instead.
type ShipRef struct {
	Load    string `xml:"load,attr"`
	Hostile string `xml:"hostile,attr"`
}

// ShipNode is a top-level <ship> definition with the events for each
// way a fight can end. The branch nodes are event-shaped: either load
// references or full anonymous events.
type ShipNode struct {
	Name string `xml:"name,attr"`

	Destroyed *EventNode `xml:"destroyed"`
	DeadCrew  *EventNode `xml:"deadCrew"`
	Gotaway   *EventNode `xml:"gotaway"`
	Surrender *EventNode `xml:"surrender"`

	// Escape flavor text and crew composition carry no cheatsheet
	// information.
	Escape *Presence `xml:"escape"`
	Crew   *Presence `xml:"crew"`
}

// EventListNode is an <eventList>: a uniform random pick between its
// entries. Lists named OVERRIDE_* replace the list with the stripped
// name.
type EventListNode struct {
	Name   string      `xml:"name,attr"`
	Events []EventNode `xml:"event"`
}

// BlueprintNode is an augment/drone/weapon blueprint; only the name
// and translated title matter here.
type BlueprintNode struct {
	Name  string    `xml:"name,attr"`
	Title *TextNode `xml:"title"`
}

// SectorDescription is a <sectorDescription> from sector_data.xml,
// reduced to what root-event discovery needs.
type SectorDescription struct {
	Name       string     `xml:"name,attr"`
	StartEvent string     `xml:"startEvent"`
	Events     []NamedRef `xml:"event"`
}
