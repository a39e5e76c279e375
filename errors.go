// Package infinity is a client-side codec and REST client for InfinityDB-style
// databases, whose wire format is a constrained dialect of JSON. The server
// distinguishes twelve primitive component types (class, attribute, string,
// boolean, float, double, long, date, byte array, byte string, char array and
// list index), far more than JSON's own. The dialect encodes the extra types
// reversibly into plain JSON text with a single-character escape: an object
// key or string value starting with '_' carries a typed token, and a real
// string that already starts with '_' gets one more '_' stuffed at the front.
//
// The package parses that dialect into a tree of Objects, Lists and Values,
// re-emits it byte-for-byte in either the standard (wire) or extended
// (human-readable) form, flattens trees to Items (ordered component tuples
// that mirror how the server physically stores data) and keeps sets of
// Items in an ItemSpace, a trie sorted by the server's native component
// order. A thin HTTP client moves the encoded text to and from the server.
package infinity

import "errors"

// Sentinel errors for programmatic handling. Callers use errors.Is to
// separate malformed input (ErrLexical, ErrSyntax), type rule violations
// (ErrType), API misuse (ErrStructure) and transport failures (ErrStatus).
var (
	ErrLexical   = errors.New("malformed token")
	ErrSyntax    = errors.New("malformed document")
	ErrType      = errors.New("invalid component")
	ErrStructure = errors.New("operation not valid for node")
	ErrStatus    = errors.New("server returned error status")
	ErrNotFound  = errors.New("no such item or blob")
)
