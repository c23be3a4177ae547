// Package richtext builds annotated text: a plain string paired with a list
// of entities (bold, italic, links, ...) addressed by offset and length
// rather than inline markup.
//
// # Building
//
// Values are merged with Append, New, Concat and Join. Strings and other
// plain values are appended as text; *Text values (anything implementing
// Annotated) contribute their text and their entities rebased onto the
// receiver; slices are flattened.
//
// Fmt is the interpolating constructor. A slice expression marks its
// content as the span of one or more entities:
//
//	name := richtext.Fmt([]string{"", " ", ""},
//		richtext.Seq{"Ada", richtext.TypeBold}, "Lovelace")
//	msg := richtext.Fmt([]string{"Hello, ", "!"},
//		richtext.Seq{name, richtext.Link("https://example.com/")})
//
// # Extracting
//
// Substring and Slice return new texts whose entities are clipped to the
// extracted range. Substring swaps inverted bounds; Slice returns an empty
// text for them and accepts negative indices.
//
// # Offsets
//
// Offsets are byte offsets into the Go string. UTF16Entities converts them
// for consumers that count UTF-16 code units.
//
// # Wire format
//
// ToObject renames the two fields for an external API:
//
//	payload := msg.ToObject("caption", "caption_entities")
//
// Entities are kept in insertion order and are never validated; Validate
// and SortedEntities are available for consumers that need either.
package richtext
