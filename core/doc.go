// Package core provides low-level STEP physical-file parsing primitives and
// the typed record graph they produce.
//
// A decoded model is a table of records. Each [Record] has an integer id, a
// type tag (e.g. IFCSPACE), and positional attributes. Attribute values form
// a tagged union of types satisfying the [Attribute] interface:
//
//   - [Null] - an unset attribute ($)
//   - [Omitted] - a derived attribute placeholder (*)
//   - [Bool] - a logical value (.T. / .F.)
//   - [Int] - an integer
//   - [Real] - a real number
//   - [String] - a string literal
//   - [Enum] - an enumeration literal (.ELEMENT.)
//   - [Ref] - a reference to another record (#n)
//   - [List] - an aggregate of attribute values
//   - [Typed] - a typed value wrapper (IFCAREAMEASURE(12.5))
//
// # Typed wrappers
//
// Exchange files wrap measure values unevenly: the same attribute may carry
// IFCAREAMEASURE(12.5) in one file and a bare 12.5 in the next. [Unwrap]
// strips wrappers recursively and is the single function all consumers use;
// [AsFloat] and [AsString] build on it for the common coercions.
//
// # Parsing
//
// The [Parser] type handles parsing STEP syntax from an io.Reader. It parses
// complete exchange files ([Parser.ParseFile]) or individual records and
// values. The [Lexer] type provides tokenization, converting raw bytes into
// tokens that the parser consumes.
package core
