package combat

// Outcome labels. Winning teams are reported by name.
const (
	Team1Name = "Team1"
	Team2Name = "Team2"
	Draw      = "Draw"
)

type Event struct {
	Round   int            `json:"round"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Cannon struct {
	Operational bool
}

// Team is one side of a single battle. The cannon slice never changes length
// during the battle; cannons are addressed by index.
type Team struct {
	Name     string
	Cannons  []Cannon
	Strategy Strategy
}

func NewTeam(name string, cannons int, strategy Strategy) *Team {
	t := &Team{Name: name, Cannons: make([]Cannon, cannons), Strategy: strategy}
	for i := range t.Cannons {
		t.Cannons[i].Operational = true
	}
	return t
}

func (t *Team) Operational() int {
	n := 0
	for _, c := range t.Cannons {
		if c.Operational {
			n++
		}
	}
	return n
}

func (t *Team) AnyOperational() bool { return t.FirstOperational() >= 0 }

// FirstOperational returns the lowest operational index, or -1.
func (t *Team) FirstOperational() int {
	for i, c := range t.Cannons {
		if c.Operational {
			return i
		}
	}
	return -1
}

func (t *Team) disabledSet() []bool {
	out := make([]bool, len(t.Cannons))
	for i, c := range t.Cannons {
		out[i] = !c.Operational
	}
	return out
}
