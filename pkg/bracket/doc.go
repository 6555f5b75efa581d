// Package bracket implements the labeled bracket notation codec.
//
// # Format
//
// Bracket notation represents a labeled tree as nested groups:
//
//	[S [NP [Det the] [N dog]] [VP barks]]
//
// The grammar is:
//
//	expr := '[' label (expr | token)* ']'
//
// where label and token are maximal runs of non-whitespace, non-bracket
// characters. Whitespace separates tokens and is otherwise insignificant.
// Exactly one top-level expression is accepted; trailing input is an error.
//
// # Directions
//
//   - Parse: text → [ParseTree], an ephemeral structure with no identity.
//   - Rebuild: ParseTree → fresh forest nodes and edges (the import path).
//   - Serialize: forest → text, ordering children by horizontal position so
//     the layout-driven left-to-right order becomes sentence order.
//
// Serialize(Rebuild(Parse(s))) reproduces s up to whitespace normalization
// for any well-formed input. Labels containing brackets or whitespace have
// no escaping mechanism and therefore do not round-trip; this is a known
// limitation of the format, not of the codec.
package bracket
