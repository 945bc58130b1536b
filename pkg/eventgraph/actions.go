package eventgraph

import (
	"fmt"
	"html"
	"strings"

	"github.com/hugomg/ftl-cheatsheet/pkg/ftldata"
)

// Actions are stored as small escaped HTML fragments, one per result
// bullet, so that structurally identical events compare equal with a
// plain string comparison.

func h(s string) string {
	return html.EscapeString(s)
}

// numRange renders a min/max range in human-readable form.
func numRange(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("%d", lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

// link emits a cross reference and records its anchor for the
// broken-link check.
func (g *Graph) link(kind, id string) string {
	anchor := kind + "-" + id
	g.LinkTargets[anchor] = true
	return fmt.Sprintf(`<a href="#%s">%s</a>`, h(anchor), h(id))
}

// EventLink returns a link to an event's section.
func (g *Graph) EventLink(id string) string { return g.link("event", id) }

// GroupLink returns a link to an event list's section.
func (g *Graph) GroupLink(id string) string { return g.link("list", id) }

// ShipLink returns a link to a ship's section.
func (g *Graph) ShipLink(id string) string { return g.link("ship", id) }

// blueprintAction renders a weapon/drone/augment reward. RANDOM and
// the DLC pools have no single blueprint to name.
func (g *Graph) blueprintAction(what, id string) (string, error) {
	switch id {
	case "RANDOM":
		return fmt.Sprintf("<strong>%s</strong>", h(what)), nil
	case "DLC_AUGMENTS", "DLC_DRONES", "DLC_WEAPONS":
		return fmt.Sprintf("<strong>%s</strong> (from Advanced Edition)", h(what)), nil
	}
	name, err := g.corpus.BlueprintTitle(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("<strong>%s</strong> (%s)", h(what), h(name)), nil
}

// buildActions interprets the outcome children of an event node in
// display order. It returns the rendered action list, the ship id
// when the event ends in a fight, and the enemy ship name to carry
// into the event's choices.
func (g *Graph) buildActions(node *ftldata.EventNode, enemyShip string) (actions []string, fight, newEnemy string, err error) {
	add := func(format string, args ...interface{}) {
		actions = append(actions, fmt.Sprintf(format, args...))
	}

	if env := node.Environment; env != nil {
		var what string
		switch env.Type {
		case "asteroid":
			what = "Asteroid Field"
		case "nebula":
			what = "Nebula"
		case "pulsar":
			what = "Pulsar"
		case "storm":
			what = "Plasma Storm"
		case "sun":
			what = "Red Star"
		case "PDS":
			switch env.Target {
			case "all":
				what = "Confused Anti-Ship Battery targeting both ships"
			case "enemy":
				what = "Friendly Anti-Ship Battery"
			case "player":
				what = "Anti-Ship Battery targeting us"
			default:
				return nil, "", "", fmt.Errorf("unknown environment target %q", env.Target)
			}
		default:
			return nil, "", "", fmt.Errorf("unknown environment type %q", env.Type)
		}
		add("<strong>Environment</strong> is %s", h(what))
	}

	if b := node.Boarders; b != nil {
		spc := "enemies"
		if b.Class != "" && b.Class != "random" {
			var ok bool
			spc, ok = ftldata.SpeciesName[b.Class]
			if !ok {
				return nil, "", "", fmt.Errorf("unknown species %q", b.Class)
			}
		}
		breach := ""
		if strings.EqualFold(b.Breach, "true") {
			breach = " (with <strong>breach</strong>)"
		}
		add("<strong>Boarded</strong> by %s %s%s", h(numRange(b.Min, b.Max)), h(spc), breach)
	}

	if node.Remove != nil {
		add("<strong>Remove</strong> %s", h(node.Remove.Name))
	}

	if im := node.ItemModify; im != nil {
		// Payments before rewards.
		for _, direction := range []string{"minus", "plus"} {
			for _, item := range im.Items {
				what, ok := ftldata.ResourceName[item.Type]
				if !ok {
					return nil, "", "", fmt.Errorf("unknown resource %q", item.Type)
				}
				switch {
				case item.Min >= 0 && item.Max >= 0:
					if direction == "plus" {
						add("+%s <strong>%s</strong>", h(numRange(item.Min, item.Max)), h(what))
					}
				case item.Min <= 0 && item.Max <= 0:
					if direction == "minus" {
						add("−%s <strong>%s</strong>", h(numRange(-item.Max, -item.Min)), h(what))
					}
				default:
					return nil, "", "", fmt.Errorf("nonsensical resource range %d..%d for %s", item.Min, item.Max, item.Type)
				}
			}
		}
	}

	if r := node.AutoReward; r != nil {
		kind := strings.TrimSpace(r.Kind)
		blueprint := ""
		switch kind {
		case "augment":
			kind, blueprint = "scrap_only", "Augmentation"
		case "drone":
			kind, blueprint = "scrap_only", "Drone Schematic"
		case "weapon":
			kind, blueprint = "scrap_only", "Weapon"
		}
		level, ok := ftldata.AutoRewardLevel[strings.ToUpper(r.Level)]
		if !ok {
			return nil, "", "", fmt.Errorf("unknown reward level %q", r.Level)
		}
		kindText, ok := ftldata.AutoRewardKind[kind]
		if !ok {
			return nil, "", "", fmt.Errorf("unknown reward kind %q", kind)
		}
		add("<strong>%s</strong> %s", h(level), h(kindText))
		if blueprint != "" {
			bp, err := g.blueprintAction(blueprint, "RANDOM")
			if err != nil {
				return nil, "", "", err
			}
			actions = append(actions, bp)
		}
	}

	if crew := node.CrewMember; crew != nil {
		cls := crew.Class
		if cls == "" {
			cls = crew.Type
		}
		var extra []string
		if cls != "" && cls != "random" {
			spc, ok := ftldata.SpeciesName[cls]
			if !ok {
				return nil, "", "", fmt.Errorf("unknown species %q", cls)
			}
			extra = append(extra, spc)
		}
		for _, sk := range crew.Skills() {
			extra = append(extra, fmt.Sprintf("with level %s %s", sk.Level, sk.Skill))
		}
		extraStr := ""
		if len(extra) > 0 {
			extraStr = " " + strings.Join(extra, " ")
		}
		n := crew.Amount
		switch {
		case n <= -2:
			add("<strong>Lose %d Crew</strong>", -n)
		case n == -1:
			add("<strong>Lose Crew</strong>")
		case n == 0:
			g.logger.Warn("Event grants zero crew")
		case n == 1:
			add("<strong>Gain Crew</strong>%s", h(extraStr))
		default:
			add("<strong>Gain %d Crew</strong>%s", n, h(extraStr))
		}
	}

	if rc := node.RemoveCrew; rc != nil {
		spc := ""
		if rc.Class != "" && rc.Class != "random" {
			var ok bool
			spc, ok = ftldata.SpeciesName[rc.Class]
			if !ok {
				return nil, "", "", fmt.Errorf("unknown species %q", rc.Class)
			}
			spc += " "
		}
		cloneMsg := "<strong>(cannot be cloned)</strong>"
		if strings.TrimSpace(rc.Clone) == "true" {
			cloneMsg = "(can be saved by the clone bay)"
		}
		add("<strong>Lose %sCrew</strong> %s", h(spc), cloneMsg)
	}

	if len(node.Damage) > 0 {
		hull := 0
		for _, d := range node.Damage {
			hull += d.Amount
		}
		if hull < 0 {
			add("%d <strong>Hull Repair</strong>", -hull)
		} else if hull > 0 {
			add("%d <strong>Hull Damage</strong>", hull)
		}

		for _, d := range node.Damage {
			if d.System == "" {
				continue
			}
			system, ok := ftldata.SystemName[d.System]
			if !ok {
				return nil, "", "", fmt.Errorf("unknown system %q", d.System)
			}
			effect := ""
			if d.Effect != "" {
				name, ok := ftldata.DamageEffectName[d.Effect]
				if !ok {
					return nil, "", "", fmt.Errorf("unknown damage effect %q", d.Effect)
				}
				effect = " (" + name + ")"
			}
			add("%d <strong>System Damage</strong> to %s%s", d.Amount, h(system), h(effect))
		}
	}

	for _, st := range node.Status {
		if st.System == "" {
			return nil, "", "", fmt.Errorf("status effect without a system")
		}
		system, ok := ftldata.SystemName[st.System]
		if !ok {
			return nil, "", "", fmt.Errorf("unknown system %q", st.System)
		}
		amount := st.Amount
		if amount == "" {
			amount = "???"
		}

		var msg string
		switch st.Type {
		case "clear":
			msg = fmt.Sprintf("<strong>Restore Power</strong> to %s", h(system))
		case "divide":
			if amount != "2" {
				return nil, "", "", fmt.Errorf("status divide by %s, expected 2", amount)
			}
			msg = fmt.Sprintf("<strong>Half Power</strong> to %s", h(system))
		case "limit":
			if amount == "0" {
				msg = fmt.Sprintf("<strong>Disable</strong> %s", h(system))
			} else {
				msg = fmt.Sprintf("<strong>Limit Power</strong> to %s, down to %s", h(system), h(amount))
			}
		case "loss":
			msg = fmt.Sprintf("<strong>Reduce Power</strong> to %s by %s", h(system), h(amount))
		default:
			return nil, "", "", fmt.Errorf("unknown status type %q", st.Type)
		}

		switch st.Target {
		case "player":
		case "enemy":
			msg = "<strong>Enemy ship: </strong>" + msg
		default:
			return nil, "", "", fmt.Errorf("unknown status target %q", st.Target)
		}
		actions = append(actions, msg)
	}

	if p := node.ModifyPursuit; p != nil {
		if p.Amount == 0 {
			return nil, "", "", fmt.Errorf("modifyPursuit with amount 0")
		}
		what := "Rebel Fleet Advances"
		n := p.Amount
		if n < 0 {
			what = "Rebel Fleet Delayed"
			n = -n
		}
		plural := "jumps"
		if n == 1 {
			plural = "jump"
		}
		add("<strong>%s</strong> by %d %s", what, n, plural)
	}

	if node.RevealMap != nil {
		add("<strong>Map Update</strong>")
	}

	if up := node.Upgrade; up != nil {
		system, ok := ftldata.SystemName[up.System]
		if !ok {
			return nil, "", "", fmt.Errorf("unknown system %q", up.System)
		}
		msg := fmt.Sprintf("<strong>Upgrade</strong> %s", h(system))
		if up.Amount != "" && up.Amount != "1" {
			msg += fmt.Sprintf(" (by %s)", h(up.Amount))
		}
		actions = append(actions, msg)
	}

	for _, reward := range []struct {
		what string
		ref  *ftldata.NamedRef
	}{
		{"Augmentation", node.Augment},
		{"Weapon", node.Weapon},
		{"Drone Schematic", node.Drone},
	} {
		if reward.ref == nil {
			continue
		}
		msg, err := g.blueprintAction(reward.what, reward.ref.Name)
		if err != nil {
			return nil, "", "", err
		}
		actions = append(actions, msg)
	}

	if q := node.Quest; q != nil {
		var url string
		switch {
		case g.eventKeys[q.Event]:
			// Most quests point at a single event.
			g.QuestEvents[q.Event] = true
			url = g.EventLink(q.Event)
		case g.groupKeys[q.Event]:
			// A few (e.g. HIDDEN_FEDERATION_BASE_LIST) point at a list.
			g.QuestGroups[q.Event] = true
			url = g.GroupLink(q.Event)
		default:
			return nil, "", "", fmt.Errorf("quest marker for unknown event %q", q.Event)
		}
		add("<strong>Quest</strong> marker for %s", url)
	}

	if u := node.UnlockShip; u != nil {
		name, ok := ftldata.UnlockName[u.ID]
		if !ok {
			return nil, "", "", fmt.Errorf("unknown ship unlock id %q", u.ID)
		}
		add("<strong>Unlock</strong> the %s", h(name))
	}

	if node.SecretSector != nil {
		add("<strong>Travel</strong> to the crystal sector!")
	}

	if node.Store != nil {
		add("<strong>Enter Store</strong>")
	}

	endsWithFight := false
	if ship := node.Ship; ship != nil {
		var hostile bool
		switch strings.ToLower(ship.Hostile) {
		case "true":
			hostile = true
		case "false", "":
		default:
			return nil, "", "", fmt.Errorf("unknown hostile value %q", ship.Hostile)
		}

		if ship.Load != "" {
			enemyShip = ship.Load
			url := g.ShipLink(ship.Load)
			if hostile {
				add("<strong>Fight</strong> a %s", url)
			} else {
				add("<strong>Encounter</strong> a %s", url)
			}
		} else {
			if hostile {
				add("<strong>Fight</strong>")
			} else {
				add("<strong>End Fight</strong>")
			}
		}

		if hostile && enemyShip != "" {
			endsWithFight = true
		}
	}

	if endsWithFight {
		fight = enemyShip
	}
	return actions, fight, enemyShip, nil
}
