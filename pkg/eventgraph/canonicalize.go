package eventgraph

// Some event lists repeat the same outcome several times to weight the
// random pick (DESTROYED_DEFAULT is a well-known case). Merging the
// repeats into a single entry with a summed weight keeps the rendered
// odds readable.

func (g *Graph) canonicalizeGroups() {
	for key, entries := range g.Groups {
		if g.containsDuplicate(entries) {
			g.Groups[key] = g.mergeEntries(entries)
		}
	}
}

func (g *Graph) containsDuplicate(entries []GroupEntry) bool {
	for i := 1; i < len(entries); i++ {
		for j := 0; j < i; j++ {
			e1 := g.Events[entries[i].Target]
			e2 := g.Events[entries[j].Target]
			if e1 != nil && e2 != nil && e1.equal(e2) {
				return true
			}
		}
	}
	return false
}

// mergeEntries folds structurally identical branches together, keeping
// first-seen order and summing weights.
func (g *Graph) mergeEntries(entries []GroupEntry) []GroupEntry {
	var merged []GroupEntry
outer:
	for _, entry := range entries {
		ev := g.Events[entry.Target]
		for i := range merged {
			kept := g.Events[merged[i].Target]
			if ev != nil && kept != nil && ev.equal(kept) {
				merged[i].Weight += entry.Weight
				continue outer
			}
		}
		merged = append(merged, entry)
	}
	return merged
}
