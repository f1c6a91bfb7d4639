package enums

import "fmt"

// FileKind classifies stored media captured in the field.
type FileKind string

const (
	FileKindAudio FileKind = "audio"
	FileKindPhoto FileKind = "photo"
)

var validFileKinds = []FileKind{
	FileKindAudio,
	FileKindPhoto,
}

// String implements fmt.Stringer.
func (f FileKind) String() string {
	return string(f)
}

// IsValid reports whether the value matches a known file kind.
func (f FileKind) IsValid() bool {
	for _, candidate := range validFileKinds {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFileKind converts raw input into FileKind.
func ParseFileKind(value string) (FileKind, error) {
	for _, candidate := range validFileKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid file kind %q", value)
}
