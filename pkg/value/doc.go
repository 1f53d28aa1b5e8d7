// Package value holds the three-state value model shared by every form
// controller together with the per-type parse/format codecs.
//
// A Value is Empty (intentionally blank), Unresolved (text is present but does
// not parse, or violates a numeric constraint) or Concrete. Codecs never
// return errors: anything that cannot be turned into a concrete value parses
// to Unresolved and the controllers decide what to do with it on blur.
//
// Every codec satisfies the round-trip law Parse(Format(v)) == v for concrete
// values, Parse("") is Empty and Format of a non-concrete value is "".
package value
