package model

import "fmt"

// Kind classifies a file that takes part in jpg/nef pairing.
type Kind int

const (
	// KindNone marks a file that is neither an image nor a raw file.
	// Such files are never inspected.
	KindNone Kind = iota

	// KindImage is a file whose name ends in ".jpg" or ".jpeg".
	KindImage

	// KindRaw is a file whose name ends in "nef".
	// Note the suffix has no leading dot: "stonef" is a raw file too.
	KindRaw
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindImage:
		return "image"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its string form for JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its string form.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*k = KindNone
	case "image":
		*k = KindImage
	case "raw":
		*k = KindRaw
	default:
		return fmt.Errorf("unknown file kind %q", string(text))
	}
	return nil
}
