// Package foundry models the Foundry VTT D&D 5e actor document produced by a
// conversion.
package foundry

const (
	// DefaultImage is the placeholder portrait and token texture.
	DefaultImage = "icons/svg/mystery-man.svg"

	ActorTypeCharacter = "character"
	SystemID           = "dnd5e"
	SystemVersion      = "4.0.0"
)

// Actor is the importable character document.
type Actor struct {
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Img            string         `json:"img"`
	System         System         `json:"system"`
	Items          []any          `json:"items"`
	Effects        []any          `json:"effects"`
	Flags          map[string]any `json:"flags"`
	Folder         *string        `json:"folder"`
	Sort           int            `json:"sort"`
	Ownership      Ownership      `json:"ownership"`
	Stats          Stats          `json:"_stats"`
	PrototypeToken PrototypeToken `json:"prototypeToken"`
}

type Ownership struct {
	Default int `json:"default"`
}

type Stats struct {
	SystemID      string `json:"systemId"`
	SystemVersion string `json:"systemVersion"`
}

// System is the dnd5e system data block.
type System struct {
	Abilities  map[string]Ability `json:"abilities"`
	Attributes Attributes         `json:"attributes"`
	Details    Details            `json:"details"`
	Traits     Traits             `json:"traits"`
	Currency   Currency           `json:"currency"`
	Skills     map[string]Skill   `json:"skills"`
}

type Ability struct {
	Value      int            `json:"value"`
	Proficient int            `json:"proficient"`
	Bonuses    AbilityBonuses `json:"bonuses"`
}

type AbilityBonuses struct {
	Check string `json:"check"`
	Save  string `json:"save"`
}

type Attributes struct {
	AC       ArmorClass `json:"ac"`
	HP       HitPoints  `json:"hp"`
	Init     Initiative `json:"init"`
	Movement Movement   `json:"movement"`
	Speed    Speed      `json:"speed"`
	Prof     int        `json:"prof"`
}

type ArmorClass struct {
	Flat    int    `json:"flat"`
	Calc    string `json:"calc"`
	Formula string `json:"formula"`
}

type HitPoints struct {
	Value   int `json:"value"`
	Max     int `json:"max"`
	Temp    int `json:"temp"`
	TempMax int `json:"tempmax"`
}

type Initiative struct {
	Bonus int `json:"bonus"`
}

type Movement struct {
	Walk   int `json:"walk"`
	Burrow int `json:"burrow"`
	Climb  int `json:"climb"`
	Fly    int `json:"fly"`
	Swim   int `json:"swim"`
}

type Speed struct {
	Value string `json:"value"`
}

type Details struct {
	Biography  Biography  `json:"biography"`
	Alignment  string     `json:"alignment"`
	Race       string     `json:"race"`
	Background string     `json:"background"`
	Level      int        `json:"level"`
	XP         Experience `json:"xp"`
}

type Biography struct {
	Value  string `json:"value"`
	Public string `json:"public"`
}

type Experience struct {
	Value int `json:"value"`
	Min   int `json:"min"`
	Max   int `json:"max"`
}

type Traits struct {
	Size         string    `json:"size"`
	Languages    Languages `json:"languages"`
	CreatureType string    `json:"creatureType"`
}

type Languages struct {
	Value []string `json:"value"`
}

// Currency holds coin counts by denomination.
type Currency struct {
	PP int `json:"pp"`
	GP int `json:"gp"`
	EP int `json:"ep"`
	SP int `json:"sp"`
	CP int `json:"cp"`
}

type Skill struct {
	Value   int          `json:"value"`
	Ability string       `json:"ability"`
	Bonuses SkillBonuses `json:"bonuses"`
}

type SkillBonuses struct {
	Check   string `json:"check"`
	Passive string `json:"passive"`
}

// NewActor returns an actor with the fixed document fields set and empty
// collections allocated, so they encode as [] and {} rather than null.
func NewActor(name string) *Actor {
	return &Actor{
		Name:      name,
		Type:      ActorTypeCharacter,
		Img:       DefaultImage,
		Items:     []any{},
		Effects:   []any{},
		Flags:     map[string]any{},
		Ownership: Ownership{Default: 0},
		Stats: Stats{
			SystemID:      SystemID,
			SystemVersion: SystemVersion,
		},
		PrototypeToken: NewPrototypeToken(name),
	}
}
