package imageuri_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/imageuri"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestMIMEType(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected string
	}{
		{name: "png", data: pngHeader, expected: "image/png"},
		{name: "jpeg", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F'}, expected: "image/jpeg"},
		{name: "gif", data: []byte("GIF89a\x01\x00\x01\x00"), expected: "image/gif"},
		{name: "unknown", data: []byte("plain text"), expected: imageuri.FallbackMIME},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, imageuri.MIMEType(tc.data))
		})
	}
}

func TestEncode(t *testing.T) {
	uri, err := imageuri.Encode(pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Equal(t, "data:application/octet-stream;base64,aGk=", mustEncode(t, []byte("hi")))

	_, err = imageuri.Encode(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func mustEncode(t *testing.T, data []byte) string {
	t.Helper()
	uri, err := imageuri.Encode(data)
	require.NoError(t, err)
	return uri
}
