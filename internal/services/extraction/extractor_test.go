package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/entities/lss"
	"github.com/KirkDiggler/lss-foundry/internal/services/extraction"
)

const fullSheet = `{
	"name": {"value": "  Aria Vell  "},
	"info": {
		"charClass": {"value": "Rogue"},
		"level": {"value": 5},
		"race": {"value": "Half-Elf"},
		"background": {"value": "Urchin"},
		"alignment": {"value": "Chaotic Good"},
		"experience": {"value": "6500 xp"}
	},
	"subInfo": {
		"age": {"value": 24},
		"height": {"value": "5'6\""},
		"weight": {"value": ""}
	},
	"stats": {
		"str": {"score": 8},
		"dex": {"score": "18"},
		"con": {"score": {"value": 14}},
		"int": {"score": "n/a"},
		"wis": {"modifier": 1}
	},
	"vitality": {
		"hp-current": {"value": 31},
		"hp-max": {"value": 38},
		"ac": {"value": 15},
		"speed": {"value": "35 ft"}
	},
	"skills": {
		"stealth": {"isProf": 1},
		"acrobatics": {"isProf": true},
		"arcana": {"isProf": 0},
		"sleightOfHand": {"isProf": 2},
		"juggling": {"isProf": 1},
		"perception": "yes"
	},
	"coins": {
		"gp": {"value": 42},
		"sp": 7,
		"cp": {"value": "3"}
	}
}`

type ExtractorTestSuite struct {
	suite.Suite
	extractor extraction.Extractor
}

func TestExtractorSuite(t *testing.T) {
	suite.Run(t, new(ExtractorTestSuite))
}

func (s *ExtractorTestSuite) SetupTest() {
	s.extractor = extraction.New()
}

func (s *ExtractorTestSuite) parse(raw string) *lss.Document {
	doc, err := lss.Parse([]byte(raw))
	s.Require().NoError(err)
	return doc
}

func (s *ExtractorTestSuite) TestEmptyRecordDefaults() {
	doc := s.parse(`{}`)

	abilities := s.extractor.Abilities(doc)
	s.Len(abilities, 6)
	for _, key := range dnd5e.AbilityKeys() {
		s.Equal(10, abilities[key].Value, key)
		s.Equal(0, abilities[key].Proficient, key)
	}

	currency := s.extractor.Currency(doc)
	s.Zero(currency.PP)
	s.Zero(currency.GP)
	s.Zero(currency.EP)
	s.Zero(currency.SP)
	s.Zero(currency.CP)

	attrs := s.extractor.Attributes(doc)
	s.Equal(0, attrs.HP.Value)
	s.Equal(0, attrs.HP.Max)
	s.Equal(10, attrs.AC.Flat)
	s.Equal("default", attrs.AC.Calc)
	s.Equal(30, attrs.Movement.Walk)
	s.Equal("30 ft", attrs.Speed.Value)
	s.Equal(2, attrs.Prof)

	details := s.extractor.Details(doc, "")
	s.Equal("", details.Race)
	s.Equal("Unaligned", details.Alignment)
	s.Equal(1, details.Level)
	s.Equal(355000, details.XP.Max)
	s.Equal("", details.Biography.Value)

	s.Equal("New Character", s.extractor.Name(doc, ""))
}

func (s *ExtractorTestSuite) TestAbilities() {
	abilities := s.extractor.Abilities(s.parse(fullSheet))

	s.Equal(8, abilities["str"].Value)
	s.Equal(18, abilities["dex"].Value)
	s.Equal(14, abilities["con"].Value)
	s.Equal(10, abilities["int"].Value, "unparseable score defaults")
	s.Equal(10, abilities["wis"].Value, "missing score defaults")
	s.Equal(10, abilities["cha"].Value, "missing ability defaults")
}

func (s *ExtractorTestSuite) TestPresentScoresAreTakenAsWritten() {
	abilities := s.extractor.Abilities(s.parse(`{"stats":{
		"str": {"score": 0},
		"dex": {"score": "0"},
		"con": {"score": {"value": 0}},
		"int": {"score": null},
		"wis": {"score": ""}
	}}`))

	s.Equal(0, abilities["str"].Value)
	s.Equal(0, abilities["dex"].Value)
	s.Equal(0, abilities["con"].Value)
	s.Equal(10, abilities["int"].Value)
	s.Equal(10, abilities["wis"].Value)
}

func (s *ExtractorTestSuite) TestAttributes() {
	attrs := s.extractor.Attributes(s.parse(fullSheet))

	s.Equal(31, attrs.HP.Value)
	s.Equal(38, attrs.HP.Max)
	s.Equal(15, attrs.AC.Flat)
	s.Equal(35, attrs.Movement.Walk)
	s.Equal("35 ft", attrs.Speed.Value)
	s.Equal(3, attrs.Prof)
	s.Zero(attrs.Movement.Fly)
}

func (s *ExtractorTestSuite) TestMaxHPDefaultsToCurrent() {
	attrs := s.extractor.Attributes(s.parse(`{"vitality":{"hp-current":{"value":12}}}`))
	s.Equal(12, attrs.HP.Max)
}

func (s *ExtractorTestSuite) TestLevelAcceptsBareAndWrapped() {
	testCases := []struct {
		name  string
		raw   string
		level int
		prof  int
	}{
		{name: "wrapped", raw: `{"info":{"level":{"value":9}}}`, level: 9, prof: 4},
		{name: "bare", raw: `{"info":{"level":17}}`, level: 17, prof: 6},
		{name: "text", raw: `{"info":{"level":"13"}}`, level: 13, prof: 5},
		{name: "wrapped zero", raw: `{"info":{"level":{"value":0}}}`, level: 0, prof: 2},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			doc := s.parse(tc.raw)
			s.Equal(tc.level, s.extractor.Details(doc, "").Level)
			s.Equal(tc.prof, s.extractor.Attributes(doc).Prof)
		})
	}
}

func (s *ExtractorTestSuite) TestDetails() {
	doc := s.parse(fullSheet)

	s.Run("source race when no override", func() {
		details := s.extractor.Details(doc, "")
		s.Equal("Half-Elf", details.Race)
		s.Equal("Urchin", details.Background)
		s.Equal("Chaotic Good", details.Alignment)
		s.Equal(6500, details.XP.Value)
		s.Equal("Class: Rogue\nBackground: Urchin\nAge: 24\nHeight: 5'6\"\n", details.Biography.Value)
	})

	s.Run("override wins", func() {
		s.Equal("Tabaxi", s.extractor.Details(doc, "Tabaxi").Race)
	})

	s.Run("blank override falls back to source", func() {
		s.Equal("Half-Elf", s.extractor.Details(doc, "   ").Race)
	})
}

func (s *ExtractorTestSuite) TestSkills() {
	skills := s.extractor.Skills(s.parse(fullSheet))

	s.Len(skills, 18)
	s.Equal(1, skills[dnd5e.SkillStealth].Value)
	s.Equal(1, skills[dnd5e.SkillAcrobatics].Value)
	s.Equal(1, skills[dnd5e.SkillSleightOfHand].Value)
	s.Equal(0, skills[dnd5e.SkillArcana].Value)
	s.Equal(0, skills[dnd5e.SkillPerception].Value, "non-mapping entries are ignored")
	s.Equal(dnd5e.AbilityDexterity, skills[dnd5e.SkillStealth].Ability)
	s.Equal(dnd5e.AbilityWisdom, skills[dnd5e.SkillSurvival].Ability)
}

func (s *ExtractorTestSuite) TestSkillsIgnoreMalformedSection() {
	skills := s.extractor.Skills(s.parse(`{"skills":[1,2,3]}`))

	s.Len(skills, 18)
	for code, skill := range skills {
		s.Equal(0, skill.Value, code)
	}
}

func (s *ExtractorTestSuite) TestCurrency() {
	currency := s.extractor.Currency(s.parse(fullSheet))

	s.Equal(0, currency.PP)
	s.Equal(42, currency.GP)
	s.Equal(0, currency.EP)
	s.Equal(7, currency.SP)
	s.Equal(3, currency.CP)
}

func (s *ExtractorTestSuite) TestName() {
	doc := s.parse(fullSheet)

	s.Equal("Aria Vell", s.extractor.Name(doc, ""))
	s.Equal("Nyx", s.extractor.Name(doc, "  Nyx "))
	s.Equal("42", s.extractor.Name(s.parse(`{"name":42}`), ""))
	s.Equal("New Character", s.extractor.Name(s.parse(`{"name":{"value":"   "}}`), ""))
}

func (s *ExtractorTestSuite) TestPreview() {
	preview := s.extractor.Preview(s.parse(fullSheet))

	s.Equal(&extraction.Preview{
		Name:      "Aria Vell",
		Class:     "Rogue",
		Race:      "Half-Elf",
		Level:     5,
		Alignment: "Chaotic Good",
	}, preview)
}

func (s *ExtractorTestSuite) TestSystemAssemblesEverySection() {
	system := s.extractor.System(s.parse(fullSheet), "Drow")

	s.Len(system.Abilities, 6)
	s.Len(system.Skills, 18)
	s.Equal("Drow", system.Details.Race)
	s.Equal("med", system.Traits.Size)
	s.Equal("humanoid", system.Traits.CreatureType)
	s.NotNil(system.Traits.Languages.Value)
	s.Equal(42, system.Currency.GP)
}

func (s *ExtractorTestSuite) TestDegradedDocumentIsTotal() {
	system := s.extractor.System(s.parse(`{"data":"not valid json"}`), "")

	s.Len(system.Abilities, 6)
	s.Len(system.Skills, 18)
	s.Equal(10, system.Abilities["str"].Value)
	s.Equal(2, system.Attributes.Prof)
}
