package textstyle

import (
	"fmt"
	"strings"
)

// Alignment is the horizontal alignment of the text inside its rect.
// The zero value is AlignCenter.
type Alignment uint8

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
	AlignJustify
)

var alignmentNames = map[Alignment]string{
	AlignCenter:  "center",
	AlignLeft:    "left",
	AlignRight:   "right",
	AlignJustify: "justify",
}

// userAlignments is the user-facing scale, indexed by code.
var userAlignments = [...]Alignment{AlignLeft, AlignCenter, AlignRight, AlignJustify}

// storageAlignments is the scale persisted in style documents, indexed by code.
var storageAlignments = [...]Alignment{AlignCenter, AlignJustify, AlignLeft, AlignRight}

// String returns the lowercase alignment name.
func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Alignment(%d)", uint8(a))
}

// Valid reports whether a is one of the four known alignments.
func (a Alignment) Valid() bool {
	_, ok := alignmentNames[a]
	return ok
}

// UserCode returns the code of a on the user-facing scale.
func (a Alignment) UserCode() int { return codeOf(userAlignments[:], a) }

// StorageCode returns the code of a on the storage scale.
func (a Alignment) StorageCode() int { return codeOf(storageAlignments[:], a) }

// AlignmentFromUserCode maps a user-facing code to an Alignment.
// Unknown codes map to AlignCenter.
func AlignmentFromUserCode(code int) Alignment { return fromCode(userAlignments[:], code) }

// AlignmentFromStorageCode maps a persisted code to an Alignment.
// Unknown codes map to AlignCenter.
func AlignmentFromStorageCode(code int) Alignment { return fromCode(storageAlignments[:], code) }

func fromCode(table []Alignment, code int) Alignment {
	if code < 0 || code >= len(table) {
		return AlignCenter
	}
	return table[code]
}

// codeOf returns the index of a in table, or the index of AlignCenter
// when a is not a known alignment.
func codeOf(table []Alignment, a Alignment) int {
	center := 0
	for i, v := range table {
		if v == a {
			return i
		}
		if v == AlignCenter {
			center = i
		}
	}
	return center
}

// ParseAlignment parses an alignment name ("left", "center", "right",
// "justify"); "start", "end" and "justified" are accepted as aliases.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return AlignCenter, nil
	case "left", "start":
		return AlignLeft, nil
	case "right", "end":
		return AlignRight, nil
	case "justify", "justified":
		return AlignJustify, nil
	}
	return AlignCenter, fmt.Errorf("unknown alignment %q (want left, center, right or justify)", s)
}

// MarshalText encodes the alignment by name.
func (a Alignment) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid alignment %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an alignment name.
func (a *Alignment) UnmarshalText(text []byte) error {
	v, err := ParseAlignment(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
