package battle

// Default species catalog. External data can replace this wholesale via the
// config loader; the engine itself only ever reads it.

func mv(name string, t PokeType, power int) Move {
	return Move{Name: name, Type: t, Power: power, Category: MoveDamage}
}

func sp(name string, types []PokeType, base Stats, evolvesInto string, evolveLevel int, moves ...Move) *Species {
	return &Species{
		Name:        name,
		Types:       types,
		Base:        base,
		Moves:       moves,
		EvolvesInto: evolvesInto,
		EvolveLevel: evolveLevel,
	}
}

// DefaultCatalog returns the compiled-in species catalog.
func DefaultCatalog() Catalog {
	list := []*Species{
		sp("Charmander", []PokeType{TypeFire}, Stats{HP: 39, Attack: 52, Defense: 43, Speed: 65}, "Charmeleon", 16,
			mv("Scratch", TypeNormal, 40), mv("Ember", TypeFire, 40)),
		sp("Charmeleon", []PokeType{TypeFire}, Stats{HP: 58, Attack: 64, Defense: 58, Speed: 80}, "Charizard", 36,
			mv("Slash", TypeNormal, 70), mv("Flamethrower", TypeFire, 90)),
		sp("Charizard", []PokeType{TypeFire, TypeFlying}, Stats{HP: 78, Attack: 84, Defense: 78, Speed: 100}, "", 0,
			mv("Wing Attack", TypeFlying, 60), mv("Flamethrower", TypeFire, 90), mv("Fire Blast", TypeFire, 110)),

		sp("Squirtle", []PokeType{TypeWater}, Stats{HP: 44, Attack: 48, Defense: 65, Speed: 43}, "Wartortle", 16,
			mv("Tackle", TypeNormal, 40), mv("Water Gun", TypeWater, 40)),
		sp("Wartortle", []PokeType{TypeWater}, Stats{HP: 59, Attack: 63, Defense: 80, Speed: 58}, "Blastoise", 36,
			mv("Bite", TypeNormal, 60), mv("Bubble Beam", TypeWater, 65)),
		sp("Blastoise", []PokeType{TypeWater}, Stats{HP: 79, Attack: 83, Defense: 100, Speed: 78}, "", 0,
			mv("Bite", TypeNormal, 60), mv("Hydro Pump", TypeWater, 110), mv("Ice Beam", TypeIce, 90)),

		sp("Bulbasaur", []PokeType{TypeGrass, TypePoison}, Stats{HP: 45, Attack: 49, Defense: 49, Speed: 45}, "Ivysaur", 16,
			mv("Tackle", TypeNormal, 40), mv("Vine Whip", TypeGrass, 45)),
		sp("Ivysaur", []PokeType{TypeGrass, TypePoison}, Stats{HP: 60, Attack: 62, Defense: 63, Speed: 60}, "Venusaur", 32,
			mv("Razor Leaf", TypeGrass, 55), mv("Sludge", TypePoison, 65)),
		sp("Venusaur", []PokeType{TypeGrass, TypePoison}, Stats{HP: 80, Attack: 82, Defense: 83, Speed: 80}, "", 0,
			mv("Razor Leaf", TypeGrass, 55), mv("Sludge Bomb", TypePoison, 90), mv("Solar Beam", TypeGrass, 120)),

		sp("Pikachu", []PokeType{TypeElectric}, Stats{HP: 35, Attack: 55, Defense: 40, Speed: 90}, "Raichu", 30,
			mv("Quick Attack", TypeNormal, 40), mv("Thunder Shock", TypeElectric, 40)),
		sp("Raichu", []PokeType{TypeElectric}, Stats{HP: 60, Attack: 90, Defense: 55, Speed: 110}, "", 0,
			mv("Quick Attack", TypeNormal, 40), mv("Thunderbolt", TypeElectric, 90)),

		sp("Geodude", []PokeType{TypeRock, TypeGround}, Stats{HP: 40, Attack: 80, Defense: 100, Speed: 20}, "Graveler", 25,
			mv("Tackle", TypeNormal, 40), mv("Rock Throw", TypeRock, 50)),
		sp("Graveler", []PokeType{TypeRock, TypeGround}, Stats{HP: 55, Attack: 95, Defense: 115, Speed: 35}, "Golem", 40,
			mv("Rock Slide", TypeRock, 75), mv("Dig", TypeGround, 80)),
		sp("Golem", []PokeType{TypeRock, TypeGround}, Stats{HP: 80, Attack: 120, Defense: 130, Speed: 45}, "", 0,
			mv("Rock Slide", TypeRock, 75), mv("Earthquake", TypeGround, 100)),

		sp("Gastly", []PokeType{TypeGhost, TypePoison}, Stats{HP: 30, Attack: 35, Defense: 30, Speed: 80}, "Haunter", 25,
			mv("Lick", TypeGhost, 30), mv("Sludge", TypePoison, 65)),
		sp("Haunter", []PokeType{TypeGhost, TypePoison}, Stats{HP: 45, Attack: 50, Defense: 45, Speed: 95}, "Gengar", 40,
			mv("Shadow Punch", TypeGhost, 60), mv("Sludge", TypePoison, 65)),
		sp("Gengar", []PokeType{TypeGhost, TypePoison}, Stats{HP: 60, Attack: 65, Defense: 60, Speed: 110}, "", 0,
			mv("Shadow Ball", TypeGhost, 80), mv("Sludge Bomb", TypePoison, 90)),

		sp("Dratini", []PokeType{TypeDragon}, Stats{HP: 41, Attack: 64, Defense: 45, Speed: 50}, "Dragonair", 30,
			mv("Wrap", TypeNormal, 15), mv("Dragon Rage", TypeDragon, 40)),
		sp("Dragonair", []PokeType{TypeDragon}, Stats{HP: 61, Attack: 84, Defense: 65, Speed: 70}, "Dragonite", 55,
			mv("Slam", TypeNormal, 80), mv("Dragon Rage", TypeDragon, 40)),
		sp("Dragonite", []PokeType{TypeDragon, TypeFlying}, Stats{HP: 91, Attack: 134, Defense: 95, Speed: 80}, "", 0,
			mv("Wing Attack", TypeFlying, 60), mv("Outrage", TypeDragon, 120)),

		sp("Hitmonlee", []PokeType{TypeFighting}, Stats{HP: 50, Attack: 120, Defense: 53, Speed: 87}, "", 0,
			mv("Double Kick", TypeFighting, 60), mv("High Jump Kick", TypeFighting, 110)),
		sp("Lapras", []PokeType{TypeWater, TypeIce}, Stats{HP: 130, Attack: 85, Defense: 80, Speed: 60}, "", 0,
			mv("Surf", TypeWater, 90), mv("Ice Beam", TypeIce, 90)),
		sp("Snorlax", []PokeType{TypeNormal}, Stats{HP: 160, Attack: 110, Defense: 65, Speed: 30}, "", 0,
			mv("Body Slam", TypeNormal, 85), mv("Hyper Beam", TypeNormal, 150)),
		sp("Scyther", []PokeType{TypeBug, TypeFlying}, Stats{HP: 70, Attack: 110, Defense: 80, Speed: 105}, "", 0,
			mv("Fury Cutter", TypeBug, 40), mv("Wing Attack", TypeFlying, 60)),
		sp("Kadabra", []PokeType{TypePsychic}, Stats{HP: 40, Attack: 35, Defense: 30, Speed: 105}, "", 0,
			mv("Confusion", TypePsychic, 50), mv("Psybeam", TypePsychic, 65)),
		sp("Onix", []PokeType{TypeRock, TypeGround}, Stats{HP: 35, Attack: 45, Defense: 160, Speed: 70}, "", 0,
			mv("Rock Throw", TypeRock, 50), mv("Slam", TypeNormal, 80)),
	}
	cat := make(Catalog, len(list))
	for _, s := range list {
		cat[s.Name] = s
	}
	return cat
}
