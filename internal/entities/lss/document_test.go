package lss_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/entities/lss"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

type DocumentTestSuite struct {
	suite.Suite
}

func TestDocumentSuite(t *testing.T) {
	suite.Run(t, new(DocumentTestSuite))
}

func (s *DocumentTestSuite) TestParseDirectRecord() {
	doc, err := lss.Parse([]byte(`{"name":{"value":"Aria"},"info":{"level":3}}`))
	s.Require().NoError(err)

	s.False(doc.Degraded)
	s.Equal("Aria", doc.Field("name").Value.String())
	s.Equal(lss.FieldBare, doc.Field("info", "level").Kind)
}

func (s *DocumentTestSuite) TestParseEnvelope() {
	doc, err := lss.Parse([]byte(`{"tags":[],"data":"{\"name\":{\"value\":\"Brin\"}}"}`))
	s.Require().NoError(err)

	s.False(doc.Degraded)
	s.Equal("Brin", doc.Field("name").Value.String())
	s.Equal(lss.FieldAbsent, doc.Field("tags").Kind)
}

func (s *DocumentTestSuite) TestParseEnvelopeWithBadInnerDegrades() {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "not json", input: `{"data":"not valid json"}`},
		{name: "inner array", input: `{"data":"[1,2]"}`},
		{name: "inner scalar", input: `{"data":"5"}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			doc, err := lss.Parse([]byte(tc.input))
			s.Require().NoError(err)
			s.True(doc.Degraded)
			s.Equal("{}", doc.Raw())
		})
	}
}

func (s *DocumentTestSuite) TestNonStringDataIsAnOrdinaryMember() {
	doc, err := lss.Parse([]byte(`{"data":{"value":1},"name":"Cale"}`))
	s.Require().NoError(err)

	s.False(doc.Degraded)
	s.Equal("Cale", doc.Field("name").Value.String())
}

func (s *DocumentTestSuite) TestParseRejectsInvalidOuterJSON() {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "garbage", input: `{not json`},
		{name: "empty", input: ``},
		{name: "array", input: `[1,2,3]`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			doc, err := lss.Parse([]byte(tc.input))
			s.Nil(doc)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Equal("outer", errors.GetMeta(err)["layer"])
		})
	}
}

func (s *DocumentTestSuite) TestKeysWithPathCharacters() {
	doc, err := lss.Parse([]byte(`{"vitality":{"hp-current":{"value":7},"a.b":{"value":2}}}`))
	s.Require().NoError(err)

	s.Equal(int64(7), doc.Field("vitality", "hp-current").Value.Int())
	s.Equal(int64(2), doc.Field("vitality", "a.b").Value.Int())
}

func (s *DocumentTestSuite) TestFieldKinds() {
	doc, err := lss.Parse([]byte(`{
		"wrapped": {"value": 0},
		"wrappedNull": {"value": null},
		"bare": "text",
		"null": null,
		"list": [1],
		"noValue": {"other": 1}
	}`))
	s.Require().NoError(err)

	testCases := []struct {
		key      string
		expected lss.FieldKind
	}{
		{key: "wrapped", expected: lss.FieldWrapped},
		{key: "wrappedNull", expected: lss.FieldWrapped},
		{key: "bare", expected: lss.FieldBare},
		{key: "null", expected: lss.FieldAbsent},
		{key: "list", expected: lss.FieldAbsent},
		{key: "noValue", expected: lss.FieldAbsent},
		{key: "missing", expected: lss.FieldAbsent},
	}

	for _, tc := range testCases {
		s.Run(tc.key, func() {
			s.Equal(tc.expected, doc.Field(tc.key).Kind, tc.expected.String())
		})
	}

	s.Nil(doc.Field("wrappedNull").Interface())
	s.Equal(float64(0), doc.Field("wrapped").Interface())
}

func (s *DocumentTestSuite) TestNilDocumentLookups() {
	var doc *lss.Document
	s.Equal(lss.FieldAbsent, doc.Field("name").Kind)
	s.Equal("{}", doc.Raw())
}

func (s *DocumentTestSuite) TestRepeatedKeysKeepLastOccurrence() {
	doc, err := lss.Parse([]byte(`{"name":"A","name":"B","info":{"level":{"value":2,"value":7}}}`))
	s.Require().NoError(err)

	s.Equal("B", doc.Field("name").Value.String())
	s.Equal(int64(7), doc.Field("info", "level").Value.Int())
}

func (s *DocumentTestSuite) TestRepeatedEnvelopeKeyKeepsLastOccurrence() {
	doc, err := lss.Parse([]byte(`{"data":"{}","data":"{\"name\":\"Dara\"}"}`))
	s.Require().NoError(err)

	s.False(doc.Degraded)
	s.Equal("Dara", doc.Field("name").Value.String())
}
