package battle

// Trainer is the opaque context a team fights under: a name plus the Pokédex
// sightings that drive the damage multiplier. The engine registers sightings
// as combatants appear; it owns nothing else about the trainer's lifecycle.
type Trainer struct {
	Name string
	seen map[PokeType]struct{}
}

// NewTrainer creates a trainer with an empty Pokédex.
func NewTrainer(name string) *Trainer {
	return &Trainer{Name: name, seen: make(map[PokeType]struct{})}
}

// RegisterSighting records the types of an encountered species.
func (t *Trainer) RegisterSighting(types ...PokeType) {
	for _, pt := range types {
		if pt.valid() {
			t.seen[pt] = struct{}{}
		}
	}
}

// SeenTypes returns how many distinct types the trainer has encountered.
func (t *Trainer) SeenTypes() int { return len(t.seen) }

// Completion is the Pokédex completion ratio: distinct types seen over the
// declared type universe, in [0, 1].
func (t *Trainer) Completion() float64 {
	return float64(len(t.seen)) / float64(NumTypes)
}
