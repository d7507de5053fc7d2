package generator

// Model describes one device family's broadcast behavior. Unique models
// derive a stable payload from the walker identity (trivially trackable,
// useful as a control group); the rest pick a payload per burst from a
// distribution, which is what makes the hash ambiguous across carriers.
type Model struct {
	Name        string
	Probability float64
	Unique      bool

	// Payloads maps payload hash to selection probability. Empty for
	// unique models.
	Payloads map[string]float64
}

// DefaultModels is a small market mix: two-fifths of walkers carry a
// trivially unique device, the rest share model-level payload hashes.
func DefaultModels() []Model {
	return []Model{
		{Name: "Model_Unique", Probability: 0.4, Unique: true},
		{Name: "Model_B_01", Probability: 0.2,
			Payloads: map[string]float64{"B_common_hash_X": 1.0}},
		{Name: "Model_C_01", Probability: 0.2,
			Payloads: map[string]float64{"C_01_base_hash": 0.9, "C_01_sub_hash": 0.1}},
		{Name: "Model_C_02", Probability: 0.2,
			Payloads: map[string]float64{"C_02_base_hash": 0.9, "C_02_sub_hash": 0.1}},
	}
}

// Walker is one simulated carrier: a device model and a route over the
// detector arena.
type Walker struct {
	ID    string
	Model string
	Route string
}
