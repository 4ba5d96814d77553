package form_dto

// SubKeyKind discriminates the shape of a response key. For a given question
// id the store only ever holds keys of one kind; the kinds map one-to-one
// onto the variant families.
type SubKeyKind string

const (
	SubKeyRoot    SubKeyKind = "root"    // simple answers keyed by the bare question id
	SubKeyField   SubKeyKind = "field"   // demographics / insurance / bodyMap sub-fields
	SubKeyCell    SubKeyKind = "cell"    // matrix row x column cells
	SubKeyRow     SubKeyKind = "row"     // matrixSingleAnswer, one selection per row
	SubKeyControl SubKeyKind = "control" // mixedControls sub-controls by index
)

// SubKey addresses a sub-answer inside a question. It is a comparable struct
// rather than a concatenated string so two variants sharing an id prefix can
// never collide.
type SubKey struct {
	Kind    SubKeyKind `json:"kind"`
	Field   string     `json:"field,omitempty"`
	Row     int        `json:"row,omitempty"`
	Col     int        `json:"col,omitempty"`
	Control int        `json:"control,omitempty"`
}

func RootKey() SubKey             { return SubKey{Kind: SubKeyRoot} }
func FieldKey(name string) SubKey { return SubKey{Kind: SubKeyField, Field: name} }
func CellKey(row, col int) SubKey { return SubKey{Kind: SubKeyCell, Row: row, Col: col} }
func RowKey(row int) SubKey       { return SubKey{Kind: SubKeyRow, Row: row} }
func ControlKey(index int) SubKey { return SubKey{Kind: SubKeyControl, Control: index} }

// Answer is the raw captured value under one response key. Exactly one value
// field is populated per key; which one depends on the owning variant.
type Answer struct {
	Text     string        `json:"text,omitempty"`
	Values   []string      `json:"values,omitempty"`
	Files    []FileMeta    `json:"files,omitempty"`
	Markings []BodyMarking `json:"markings,omitempty"`
}

// IsEmpty reports whether the answer carries no meaningful content.
func (a Answer) IsEmpty() bool {
	return a.Text == "" && len(a.Values) == 0 && len(a.Files) == 0 && len(a.Markings) == 0
}

// FileMeta describes a captured attachment. The blob itself lives in object
// storage under ObjectKey until submission; only metadata sits in the store.
type FileMeta struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeInBytes int64  `json:"sizeInBytes"`
	ObjectKey   string `json:"objectKey"`
}

// BodyMarking is one stroke point on the body diagram.
type BodyMarking struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}
