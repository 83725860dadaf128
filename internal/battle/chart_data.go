package battle

// chartOverrides lists every non-neutral matchup; anything absent is x1.
// Values follow the classic 15-type chart.
var chartOverrides = map[PokeType]map[PokeType]float64{
	TypeNormal: {
		TypeRock:  0.5,
		TypeGhost: 0,
	},
	TypeFire: {
		TypeFire:   0.5,
		TypeWater:  0.5,
		TypeGrass:  2,
		TypeIce:    2,
		TypeBug:    2,
		TypeRock:   0.5,
		TypeDragon: 0.5,
	},
	TypeWater: {
		TypeFire:   2,
		TypeWater:  0.5,
		TypeGrass:  0.5,
		TypeGround: 2,
		TypeRock:   2,
		TypeDragon: 0.5,
	},
	TypeElectric: {
		TypeWater:    2,
		TypeElectric: 0.5,
		TypeGrass:    0.5,
		TypeGround:   0,
		TypeFlying:   2,
		TypeDragon:   0.5,
	},
	TypeGrass: {
		TypeFire:   0.5,
		TypeWater:  2,
		TypeGrass:  0.5,
		TypePoison: 0.5,
		TypeGround: 2,
		TypeFlying: 0.5,
		TypeBug:    0.5,
		TypeRock:   2,
		TypeDragon: 0.5,
	},
	TypeIce: {
		TypeWater:  0.5,
		TypeGrass:  2,
		TypeIce:    0.5,
		TypeGround: 2,
		TypeFlying: 2,
		TypeDragon: 2,
	},
	TypeFighting: {
		TypeNormal:  2,
		TypeIce:     2,
		TypePoison:  0.5,
		TypeFlying:  0.5,
		TypePsychic: 0.5,
		TypeBug:     0.5,
		TypeRock:    2,
		TypeGhost:   0,
	},
	TypePoison: {
		TypeGrass:  2,
		TypePoison: 0.5,
		TypeGround: 0.5,
		TypeBug:    2,
		TypeRock:   0.5,
		TypeGhost:  0.5,
	},
	TypeGround: {
		TypeFire:     2,
		TypeElectric: 2,
		TypeGrass:    0.5,
		TypePoison:   2,
		TypeFlying:   0,
		TypeBug:      0.5,
		TypeRock:     2,
	},
	TypeFlying: {
		TypeElectric: 0.5,
		TypeGrass:    2,
		TypeFighting: 2,
		TypeBug:      2,
		TypeRock:     0.5,
	},
	TypePsychic: {
		TypeFighting: 2,
		TypePoison:   2,
		TypePsychic:  0.5,
	},
	TypeBug: {
		TypeFire:     0.5,
		TypeGrass:    2,
		TypeFighting: 0.5,
		TypePoison:   2,
		TypeFlying:   0.5,
		TypePsychic:  2,
		TypeGhost:    0.5,
	},
	TypeRock: {
		TypeFire:     2,
		TypeIce:      2,
		TypeFighting: 0.5,
		TypeGround:   0.5,
		TypeFlying:   2,
		TypeBug:      2,
	},
	TypeGhost: {
		TypeNormal:  0,
		TypePsychic: 0,
		TypeGhost:   2,
	},
	TypeDragon: {
		TypeDragon: 2,
	},
}

// DefaultTypeChart returns the compiled-in chart. It never fails: the override
// table above is complete by construction.
func DefaultTypeChart() *TypeChart {
	full := make(map[PokeType]map[PokeType]float64, NumTypes)
	for atk := PokeType(0); int(atk) < NumTypes; atk++ {
		row := make(map[PokeType]float64, NumTypes)
		for def := PokeType(0); int(def) < NumTypes; def++ {
			row[def] = 1
		}
		for def, m := range chartOverrides[atk] {
			row[def] = m
		}
		full[atk] = row
	}
	tc, err := NewTypeChart(full)
	if err != nil {
		panic(err) // unreachable: table is complete
	}
	return tc
}
