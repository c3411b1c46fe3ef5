// Package response classifies host replies to OTP pairing requests.
//
// Hosts answer with a loosely specified XML-like document such as
//
//	<root status_code="200"><paired>1</paired><plaincert>2d2d2d...</plaincert></root>
//
// There is no schema every host follows, so the classifier matches
// well-known markers in a fixed precedence order instead of parsing the
// document. More specific failure markers are checked before the generic
// success test, and anything unrecognised falls through to KindParseError
// with the raw text attached for diagnostics.
//
// Precedence (first match wins):
//
//  1. empty text                                  -> KindNoResponse
//  2. status_code="503"                           -> KindOTPUnavailable
//  3. status_code="400" + "Invalid uniqueid"      -> KindMalformedRequest
//     status_code="400"                           -> KindWrongSecret
//  4. status_message="OTP auth not available."    -> KindOTPUnavailable
//  5. <root status_code="200"> + <paired>1</paired>
//     with a valid <plaincert>                    -> KindSuccess
//     without one                                 -> KindParseError
//  6. anything else                               -> KindParseError
package response
