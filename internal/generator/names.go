package generator

var (
	defaultPrefixes = []string{"The"}
	defaultCores    = []string{"Chamber"}
)

// Name builds a location name from the mood's prefixes and the room's
// cores. Half the time a suffix is drawn as well; empty suffixes in the
// table mean a drawn suffix may still be omitted.
func (g *Generator) Name(roomType, mood string) string {
	parts := g.store.NameParts

	prefixes, ok := parts.Prefixes[mood]
	if !ok || len(prefixes) == 0 {
		prefixes = defaultPrefixes
	}
	cores, ok := parts.Cores[roomType]
	if !ok || len(cores) == 0 {
		cores = defaultCores
	}

	prefix := choice(g.rng, prefixes)
	core := choice(g.rng, cores)
	suffix := ""
	if g.rng.Float64() > 0.5 {
		suffix = choice(g.rng, parts.Suffixes)
	}

	name := prefix + " " + core
	if suffix != "" {
		name += " " + suffix
	}
	return name
}

// NPCName picks the index-th name for npcType, wrapping around the list.
func (g *Generator) NPCName(npcType string, index int) string {
	names := g.store.NPCNames(npcType)
	return names[index%len(names)]
}
