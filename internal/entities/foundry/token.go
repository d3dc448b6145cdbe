package foundry

// PrototypeToken is the token template placed on the canvas for the actor.
type PrototypeToken struct {
	Name             string         `json:"name"`
	DisplayName      int            `json:"displayName"`
	ActorLink        bool           `json:"actorLink"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Texture          Texture        `json:"texture"`
	LockRotation     bool           `json:"lockRotation"`
	Rotation         int            `json:"rotation"`
	Alpha            float64        `json:"alpha"`
	Disposition      int            `json:"disposition"`
	DisplayBars      int            `json:"displayBars"`
	Bar1             Bar            `json:"bar1"`
	Bar2             Bar            `json:"bar2"`
	Light            Light          `json:"light"`
	Sight            Sight          `json:"sight"`
	DetectionModes   []any          `json:"detectionModes"`
	Occludable       Occludable     `json:"occludable"`
	Ring             Ring           `json:"ring"`
	TurnMarker       TurnMarker     `json:"turnMarker"`
	MovementAction   *string        `json:"movementAction"`
	Flags            map[string]any `json:"flags"`
	RandomImg        bool           `json:"randomImg"`
	AppendNumber     bool           `json:"appendNumber"`
	PrependAdjective bool           `json:"prependAdjective"`
}

type Texture struct {
	Src            string  `json:"src"`
	AnchorX        float64 `json:"anchorX"`
	AnchorY        float64 `json:"anchorY"`
	OffsetX        float64 `json:"offsetX"`
	OffsetY        float64 `json:"offsetY"`
	Fit            string  `json:"fit"`
	ScaleX         float64 `json:"scaleX"`
	ScaleY         float64 `json:"scaleY"`
	Rotation       float64 `json:"rotation"`
	Tint           string  `json:"tint"`
	AlphaThreshold float64 `json:"alphaThreshold"`
}

// Bar points a token resource bar at an actor attribute; nil hides the bar.
type Bar struct {
	Attribute *string `json:"attribute"`
}

type Light struct {
	Negative    bool           `json:"negative"`
	Priority    int            `json:"priority"`
	Alpha       float64        `json:"alpha"`
	Angle       int            `json:"angle"`
	Bright      float64        `json:"bright"`
	Color       *string        `json:"color"`
	Coloration  int            `json:"coloration"`
	Dim         float64        `json:"dim"`
	Attenuation float64        `json:"attenuation"`
	Luminosity  float64        `json:"luminosity"`
	Saturation  float64        `json:"saturation"`
	Contrast    float64        `json:"contrast"`
	Shadows     float64        `json:"shadows"`
	Animation   LightAnimation `json:"animation"`
	Darkness    DarknessRange  `json:"darkness"`
}

type LightAnimation struct {
	Type      *string `json:"type"`
	Speed     int     `json:"speed"`
	Intensity int     `json:"intensity"`
	Reverse   bool    `json:"reverse"`
}

type DarknessRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Sight is the token's vision configuration. Range is in feet, which the
// canvas treats one to one.
type Sight struct {
	Enabled     bool    `json:"enabled"`
	Range       int     `json:"range"`
	Angle       int     `json:"angle"`
	VisionMode  string  `json:"visionMode"`
	Color       *string `json:"color"`
	Attenuation float64 `json:"attenuation"`
	Brightness  float64 `json:"brightness"`
	Saturation  float64 `json:"saturation"`
	Contrast    float64 `json:"contrast"`
}

type Occludable struct {
	Radius float64 `json:"radius"`
}

type Ring struct {
	Enabled bool        `json:"enabled"`
	Colors  RingColors  `json:"colors"`
	Effects int         `json:"effects"`
	Subject RingSubject `json:"subject"`
}

type RingColors struct {
	Ring       *string `json:"ring"`
	Background *string `json:"background"`
}

type RingSubject struct {
	Scale   float64 `json:"scale"`
	Texture *string `json:"texture"`
}

type TurnMarker struct {
	Mode        int     `json:"mode"`
	Animation   *string `json:"animation"`
	Src         *string `json:"src"`
	Disposition bool    `json:"disposition"`
}

const hpBarAttribute = "attributes.hp"

// NewPrototypeToken returns a hostile, unlinked 1x1 token with an HP bar and
// sight disabled.
func NewPrototypeToken(name string) PrototypeToken {
	hp := hpBarAttribute
	return PrototypeToken{
		Name:   name,
		Width:  1,
		Height: 1,
		Texture: Texture{
			Src:            DefaultImage,
			AnchorX:        0.5,
			AnchorY:        0.5,
			Fit:            "contain",
			ScaleX:         1,
			ScaleY:         1,
			Tint:           "#ffffff",
			AlphaThreshold: 0.75,
		},
		Alpha:       1,
		Disposition: -1,
		Bar1:        Bar{Attribute: &hp},
		Light: Light{
			Alpha:       0.5,
			Angle:       360,
			Coloration:  1,
			Attenuation: 0.5,
			Luminosity:  0.5,
			Animation: LightAnimation{
				Speed:     5,
				Intensity: 5,
			},
			Darkness: DarknessRange{Min: 0, Max: 1},
		},
		Sight: Sight{
			Angle:       360,
			VisionMode:  "basic",
			Attenuation: 0.1,
		},
		DetectionModes: []any{},
		Ring: Ring{
			Effects: 1,
			Subject: RingSubject{Scale: 1},
		},
		TurnMarker: TurnMarker{Mode: 1},
		Flags:      map[string]any{},
	}
}
