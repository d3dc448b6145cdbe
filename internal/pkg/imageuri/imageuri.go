// Package imageuri embeds raw image bytes as base64 data URIs.
package imageuri

import (
	"encoding/base64"

	"github.com/h2non/filetype"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

// FallbackMIME is used when the bytes match no known file signature.
const FallbackMIME = "application/octet-stream"

// MIMEType sniffs the media type from the file signature.
func MIMEType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || kind.MIME.Value == "" {
		return FallbackMIME
	}
	return kind.MIME.Value
}

// Encode returns data as a "data:<mime>;base64,<payload>" URI.
func Encode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.InvalidArgument("image is empty")
	}
	return "data:" + MIMEType(data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
