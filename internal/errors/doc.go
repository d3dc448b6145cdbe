// Package errors provides coded errors for the lss-foundry converter.
//
// Every layer returns *Error values carrying a Code, a user-facing message
// and optional metadata. The gRPC handlers convert with ToGRPCError;
// the command line prints Describe(err), which renders any error according
// to its Kind.
//
// # Creating errors
//
//	err := errors.NotFound("input file not found").WithMeta("path", path)
//	err := errors.InvalidArgumentf("unknown vision mode %q", mode)
//
// # Wrapping
//
//	if err := enc.Encode(actor); err != nil {
//	    return errors.Wrap(err, "failed to encode actor")
//	}
//
// Wrap keeps the code of an existing *Error and defaults to CodeInternal for
// anything else, so an unexpected failure during conversion surfaces as an
// internal error without extra bookkeeping.
//
// # Conversion error kinds
//
//   - missing input file or unknown session: NotFound
//   - source document is not JSON: Decode, an InvalidArgument with meta "layer"
//   - anything that fails while assembling the target document: Internal
//
// A malformed inner envelope is not an error; the conversion degrades to an
// empty source record instead.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("session_id", input.SessionID, vb)
//	errors.ValidateRange("manual_range", rng, 0, 1000, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
