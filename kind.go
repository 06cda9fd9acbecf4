package ggfilter

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind selects one of the fixed per-pixel color transforms.
//
// The numeric values match the filter ids used by the host views
// (Filter0..Filter7), so they are stable across releases.
type Kind uint8

const (
	// NoFilter copies the source unchanged. It is the default.
	NoFilter Kind = iota
	// InvertColors replaces every color channel c with 255-c.
	InvertColors
	// GreyScale converts to luma using Rec. 601 weights.
	GreyScale
	// Sepia applies the classic sepia tone matrix.
	Sepia
	// Warm1 scales channels by {2.45, 1.65, 2.32}.
	Warm1
	// Warm2 scales the red channel by 2.13.
	Warm2
	// Cool1 scales channels by {1.67, 1.12, 1.32}.
	Cool1
	// Cool2 scales channels by {1.23, 1.12, 1.68}.
	Cool2

	kindCount
)

var kindNames = [kindCount]string{
	NoFilter:     "NoFilter",
	InvertColors: "InvertColors",
	GreyScale:    "GreyScale",
	Sepia:        "Sepia",
	Warm1:        "Warm1",
	Warm2:        "Warm2",
	Cool1:        "Cool1",
	Cool2:        "Cool2",
}

// kindWords are the human-readable labels, title-cased on demand.
var kindWords = [kindCount]string{
	NoFilter:     "original",
	InvertColors: "invert colors",
	GreyScale:    "grey scale",
	Sepia:        "sepia",
	Warm1:        "warm 1",
	Warm2:        "warm 2",
	Cool1:        "cool 1",
	Cool2:        "cool 2",
}

// kindAliases maps folded, separator-free names to kinds.
var kindAliases = map[string]Kind{
	"nofilter":     NoFilter,
	"none":         NoFilter,
	"original":     NoFilter,
	"invertcolors": InvertColors,
	"invert":       InvertColors,
	"greyscale":    GreyScale,
	"grayscale":    GreyScale,
	"grey":         GreyScale,
	"gray":         GreyScale,
	"sepia":        Sepia,
	"warm1":        Warm1,
	"warm2":        Warm2,
	"cool1":        Cool1,
	"cool2":        Cool2,
}

// Kinds returns every defined kind in id order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := NoFilter; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// ID returns the numeric filter id.
func (k Kind) ID() int {
	return int(k)
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Label returns a title-cased display name, e.g. "Invert Colors".
func (k Kind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return cases.Title(language.English).String(kindWords[k])
}

// ParseKind parses a kind name. Matching is case-insensitive and ignores
// '-', '_' and spaces. Besides the canonical names it accepts common
// aliases ("invert", "grayscale"), the host's "filter4" style ids and
// bare numeric ids.
func ParseKind(s string) (Kind, error) {
	folded := cases.Fold().String(strings.TrimSpace(s))
	folded = strings.NewReplacer("-", "", "_", "", " ", "").Replace(folded)

	if k, ok := kindAliases[folded]; ok {
		return k, nil
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(folded, "filter")); err == nil {
		if n >= 0 && n < int(kindCount) {
			return Kind(n), nil
		}
	}
	return NoFilter, invalidf("unknown filter kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, invalidf("unknown filter kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
