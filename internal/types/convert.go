package types

// ConvKind identifies the operation a conversion node performs. The kind is
// fixed when the node is constructed; the compiler never falls back to a
// generic dynamic cast.
type ConvKind string

const (
	ConvIdentity ConvKind = "identity"
	ConvBox      ConvKind = "box"
	ConvUnbox    ConvKind = "unbox"
	ConvWiden    ConvKind = "widen"
)

// ClassifyConversion determines which conversion turns a value of type src
// into a value of type dst. It returns false for anything outside the
// supported set (narrowing, cross-kind, void operands).
func ClassifyConversion(src, dst Type) (ConvKind, bool) {
	switch {
	case Identical(src, dst):
		return ConvIdentity, true
	case IsValue(src) && Identical(dst, TypeAny):
		return ConvBox, true
	case Identical(src, TypeAny) && IsValue(dst):
		return ConvUnbox, true
	case Widens(src, dst):
		return ConvWiden, true
	}
	return "", false
}
