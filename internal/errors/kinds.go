package errors

import "fmt"

// Kind groups failures the way they are reported to a person running a
// conversion.
type Kind string

// Failure kinds
const (
	KindNone          Kind = ""
	KindInputNotFound Kind = "input_not_found"
	KindDecode        Kind = "decode_error"
	KindInvalidInput  Kind = "invalid_input"
	KindConversion    Kind = "conversion_error"
	KindCanceled      Kind = "canceled"
)

// MetaLayer names the document layer a decode error came from
const MetaLayer = "layer"

// LayerOuter is the top level of a source export
const LayerOuter = "outer"

// Decode reports a source document that could not be read at the given layer
func Decode(layer, message string, cause error) *Error {
	return &Error{
		Code:    CodeInvalidArgument,
		Message: message,
		Cause:   cause,
		Meta:    map[string]any{MetaLayer: layer},
	}
}

// KindOf classifies err
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	switch codeOf(err) {
	case CodeNotFound:
		return KindInputNotFound
	case CodeInvalidArgument:
		if _, ok := GetMeta(err)[MetaLayer]; ok {
			return KindDecode
		}
		return KindInvalidInput
	case CodeCanceled:
		return KindCanceled
	default:
		return KindConversion
	}
}

// Describe renders err as a one-line message for the command line
func Describe(err error) string {
	if err == nil {
		return ""
	}

	switch KindOf(err) {
	case KindInputNotFound:
		return fmt.Sprintf("not found: %s", messageOf(err))
	case KindDecode:
		return fmt.Sprintf("could not read the character file: %s", err.Error())
	case KindInvalidInput:
		return fmt.Sprintf("invalid input: %s", messageOf(err))
	case KindCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("conversion failed: %s", err.Error())
	}
}
