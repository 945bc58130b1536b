package ftldata

// Hardcoded display text. These are things the cheatsheet must spell
// out in writing but that the game data does not.

// SpeciesName maps crew class ids to display names.
var SpeciesName = map[string]string{
	"anaerobic": "Lanius",
	"crystal":   "Crystal",
	"energy":    "Zoltan",
	"engi":      "Engi",
	"ghost":     "Ghost",
	"human":     "Human",
	"mantis":    "Mantis",
	"rock":      "Rock",
	"slug":      "Slug",
	"traitor":   "Traitor crewmember",
}

// SkillName maps skill attribute names to display names.
var SkillName = map[string]string{
	"all_skills": "all skills",
	"combat":     "combat",
	"engines":    "engines",
	"pilot":      "pilot",
	"repair":     "repair",
	"shields":    "shields",
}

// SystemName maps system ids to display names, including the
// pseudo-systems used by damage and status effects.
var SystemName = map[string]string{
	"clonebay": "clone bay",
	"doors":    "doors",
	"drones":   "drones",
	"engine":   "engines",
	"engines":  "engines",
	"hacking":  "hacking",
	"medbay":   "medbay",
	"oxygen":   "oxygen",
	"pilot":    "piloting",
	"sensors":  "sensors",
	"shields":  "shields",
	"weapons":  "weapons",

	"random":  "random system",
	"room":    "random room",
	"reactor": "reactor",
}

// DamageEffectName maps the effect attribute of <damage> to text.
var DamageEffectName = map[string]string{
	"all":    "breach and fire",
	"fire":   "fire",
	"breach": "breach",
	"random": "may cause breach or fire",
}

// ResourceName maps item_modify resource types to display names.
var ResourceName = map[string]string{
	"drones":   "Drone Parts",
	"fuel":     "Fuel",
	"missile":  "Missiles",
	"missiles": "Missiles",
	"scrap":    "Scrap",
}

// AutoRewardKind maps reward kinds to a short description of what the
// roll hands out.
var AutoRewardKind = map[string]string{
	"droneparts": "drone parts and scrap",
	"fuel":       "fuel and scrap",
	"missiles":   "missiles and scrap",
	"scrap":      "scrap and resources",

	"droneparts_only": "drone parts",
	"fuel_only":       "fuel",
	"missiles_only":   "missiles",
	"scrap_only":      "scrap",

	"standard": "scrap and low resources",
	"stuff":    "resources and low scrap",
}

// AutoRewardLevel maps reward level attributes to display names.
var AutoRewardLevel = map[string]string{
	"LOW":    "Low",
	"MED":    "Medium",
	"MEDIUM": "Medium",
	"HIGH":   "High",
	"RANDOM": "Random",
}

// UnlockName maps unlockShip ids to cruiser names. Ids 3 and 9 (the
// Kestrel and Lanius cruisers) are never unlocked through events.
var UnlockName = map[string]string{
	"1": "Stealth Cruiser",
	"2": "Mantis Cruiser",
	"4": "Federation Cruiser",
	"5": "Slug Cruiser",
	"6": "Rock Cruiser",
	"7": "Zoltan Cruiser",
	"8": "Crystal Cruiser",
}

// BlueprintListName gives short descriptions for the blueprint lists
// that read better than the full item list would.
var BlueprintListName = map[string]string{
	"WEAPONS_BOMBS_CHEAP":        "a random cheap bomb",
	"WEAPONS_MISSILES_EXPENSIVE": "a random large rocket",
	"WEAPONS_CRYSTAL":            "a crystal weapon",
}
