package battle

// Shared builders for controlled species and teams. Base stats are chosen so
// stat derivation at the test level lands on round numbers.

func testSpecies(name string, typ PokeType, base Stats, moves ...Move) *Species {
	return &Species{Name: name, Types: []PokeType{typ}, Base: base, Moves: moves}
}

// testCatalog wraps species into a catalog keyed by name.
func testCatalog(species ...*Species) Catalog {
	cat := make(Catalog, len(species))
	for _, sp := range species {
		cat[sp.Name] = sp
	}
	return cat
}

// bruiserSpecies one-shots pushoverSpecies and always acts first.
func bruiserSpecies() *Species {
	return testSpecies("Bruiser", TypeNormal,
		Stats{HP: 100, Attack: 200, Defense: 100, Speed: 100},
		mv("Slam", TypeNormal, 80))
}

func pushoverSpecies() *Species {
	return testSpecies("Pushover", TypeNormal,
		Stats{HP: 10, Attack: 10, Defense: 10, Speed: 10},
		mv("Tap", TypeNormal, 10))
}

func mustTeam(side Side, trainerName string, combatants ...*Combatant) *Team {
	t, err := NewTeam(side, NewTrainer(trainerName), combatants)
	if err != nil {
		panic(err)
	}
	return t
}
