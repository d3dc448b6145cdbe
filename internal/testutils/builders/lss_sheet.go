// Package builders provides test data builders for creating source exports
package builders

import "encoding/json"

// SheetBuilder provides a fluent interface for building source character
// exports. Values are stored in the exporter's {"value": x} wrapper unless a
// Bare method is used.
type SheetBuilder struct {
	sheet map[string]any
}

// NewSheetBuilder creates an empty sheet
func NewSheetBuilder() *SheetBuilder {
	return &SheetBuilder{sheet: map[string]any{}}
}

func wrap(v any) map[string]any {
	return map[string]any{"value": v}
}

func (b *SheetBuilder) section(name string) map[string]any {
	if s, ok := b.sheet[name].(map[string]any); ok {
		return s
	}
	s := map[string]any{}
	b.sheet[name] = s
	return s
}

// WithName sets the character name
func (b *SheetBuilder) WithName(name string) *SheetBuilder {
	b.sheet["name"] = wrap(name)
	return b
}

// WithClass sets info.charClass
func (b *SheetBuilder) WithClass(class string) *SheetBuilder {
	b.section("info")["charClass"] = wrap(class)
	return b
}

// WithLevel sets info.level
func (b *SheetBuilder) WithLevel(level int) *SheetBuilder {
	b.section("info")["level"] = wrap(level)
	return b
}

// WithRace sets info.race
func (b *SheetBuilder) WithRace(race string) *SheetBuilder {
	b.section("info")["race"] = wrap(race)
	return b
}

// WithBackground sets info.background
func (b *SheetBuilder) WithBackground(background string) *SheetBuilder {
	b.section("info")["background"] = wrap(background)
	return b
}

// WithAlignment sets info.alignment
func (b *SheetBuilder) WithAlignment(alignment string) *SheetBuilder {
	b.section("info")["alignment"] = wrap(alignment)
	return b
}

// WithBare stores a raw value at section.key without the wrapper
func (b *SheetBuilder) WithBare(section, key string, value any) *SheetBuilder {
	b.section(section)[key] = value
	return b
}

// WithScore sets stats.<ability>.score
func (b *SheetBuilder) WithScore(ability string, score any) *SheetBuilder {
	b.section("stats")[ability] = map[string]any{"score": score}
	return b
}

// WithHitPoints sets current and maximum hit points
func (b *SheetBuilder) WithHitPoints(current, maximum int) *SheetBuilder {
	vitality := b.section("vitality")
	vitality["hp-current"] = wrap(current)
	vitality["hp-max"] = wrap(maximum)
	return b
}

// WithArmorClass sets vitality.ac
func (b *SheetBuilder) WithArmorClass(ac int) *SheetBuilder {
	b.section("vitality")["ac"] = wrap(ac)
	return b
}

// WithSpeed sets vitality.speed
func (b *SheetBuilder) WithSpeed(speed any) *SheetBuilder {
	b.section("vitality")["speed"] = wrap(speed)
	return b
}

// WithSkill sets skills.<name>.isProf
func (b *SheetBuilder) WithSkill(name string, proficient bool) *SheetBuilder {
	isProf := 0
	if proficient {
		isProf = 1
	}
	b.section("skills")[name] = map[string]any{"isProf": isProf}
	return b
}

// WithCoin sets coins.<denomination>
func (b *SheetBuilder) WithCoin(denomination string, amount int) *SheetBuilder {
	b.section("coins")[denomination] = wrap(amount)
	return b
}

// JSON encodes the sheet as a direct record
func (b *SheetBuilder) JSON() []byte {
	data, err := json.Marshal(b.sheet)
	if err != nil {
		panic(err)
	}
	return data
}

// Envelope encodes the sheet as a JSON string inside a "data" member, the
// way the exporter writes files.
func (b *SheetBuilder) Envelope() []byte {
	data, err := json.Marshal(map[string]any{
		"tags": []string{},
		"data": string(b.JSON()),
	})
	if err != nil {
		panic(err)
	}
	return data
}
