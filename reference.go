package xlformula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RefKind marks which components of a cell reference are absolute
type RefKind uint8

const (
	AbsRef RefKind = 1 // fully absolute reference (e.g. $A$1)
	AbsRow RefKind = 2 // row-only absolute reference (e.g. A$1)
	AbsCol RefKind = 3 // column-only absolute reference (e.g. $A1)
	RelRef RefKind = 4 // fully relative reference (e.g. A1)
)

// CellAddr identifies a single cell by row and column index with a
// reference kind. Row 0 renders with no row component, which is how
// column-only references (e.g. A:A) are built.
type CellAddr struct {
	Row  int
	Col  int
	Kind RefKind
}

// RangeRef describes a cell or range reference with optional sheet and
// workbook qualifiers. Opposite is present only for multi-cell ranges.
type RangeRef struct {
	Anchor   CellAddr
	Opposite *CellAddr
	Sheet    string
	Workbook string
}

// ColumnLetters converts a 1-based column index to its letter notation.
// Column numbering is bijective base-26: there is no symbol for zero, so
// A=1 ... Z=26, AA=27 and so on.
func ColumnLetters(col int) (string, error) {
	if col < 1 {
		return "", NewBuildError(ErrCodeInvalidReference, fmt.Sprintf(
			"column index must be a positive integer, got %d", col))
	}
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters, nil
}

// ColumnIndex converts column letter notation back to its 1-based index.
// The conversion is the inverse of ColumnLetters; it fails on a
// non-alphabetic column token.
func ColumnIndex(letters string) (int, error) {
	if letters == "" {
		return 0, NewBuildError(ErrCodeInvalidReference, "column letters must not be empty")
	}
	letters = strings.ToUpper(letters)
	index := 0
	for _, ch := range letters {
		if ch < 'A' || ch > 'Z' {
			return 0, NewBuildError(ErrCodeInvalidReference, fmt.Sprintf(
				"column letters must be alphabetic, got %q", letters))
		}
		index = index*26 + int(ch-'A'+1)
	}
	return index, nil
}

// text renders the cell's own fragment: column letters then row number, each
// prefixed with $ when the reference kind marks that component absolute
func (a CellAddr) text() (string, error) {
	colText, err := ColumnLetters(a.Col)
	if err != nil {
		return "", err
	}
	if a.Kind == AbsRef || a.Kind == AbsCol {
		colText = "$" + colText
	}

	rowText := ""
	if a.Row != 0 {
		if a.Row < 0 {
			return "", NewBuildError(ErrCodeInvalidReference, fmt.Sprintf(
				"row index must not be negative, got %d", a.Row))
		}
		rowText = strconv.Itoa(a.Row)
		if a.Kind == AbsRef || a.Kind == AbsRow {
			rowText = "$" + rowText
		}
	}
	return colText + rowText, nil
}

// Text builds the full reference text: the bracketed workbook qualifier,
// then the quoted sheet qualifier, then the cell or colon-joined range
func (r RangeRef) Text() (string, error) {
	text, err := r.Anchor.text()
	if err != nil {
		return "", err
	}
	if r.Opposite != nil {
		oppositeText, err := r.Opposite.text()
		if err != nil {
			return "", err
		}
		text = text + ":" + oppositeText
	}
	if r.Sheet != "" {
		text = "'" + r.Sheet + "'!" + text
	}
	if r.Workbook != "" {
		text = "[" + r.Workbook + "]" + text
	}
	return text, nil
}

// Node wraps the reference as a composite node for use inside expressions
// and calls. The reference text is built and validated here, once.
func (r RangeRef) Node() (*Reference, error) {
	text, err := r.Text()
	if err != nil {
		return nil, err
	}
	return &Reference{text: text}, nil
}

// Reference is a composite node holding prebuilt reference text. It renders
// without surrounding quotes, unlike a string literal.
type Reference struct {
	ownership
	text string
}

// NewNamedRef creates a reference node that renders as a bare name. Useful
// for Excel named ranges: a string argument would compile quoted, a named
// reference compiles as-is.
func NewNamedRef(name string) *Reference {
	return &Reference{text: name}
}

// NewCellRef creates a reference node for a single cell
func NewCellRef(row, col int, kind RefKind) (*Reference, error) {
	return RangeRef{Anchor: CellAddr{Row: row, Col: col, Kind: kind}}.Node()
}

// Value returns the reference text. References carry no cell contents; the
// text itself is the value the tree computes with.
func (r *Reference) Value() (Primitive, error) {
	return r.text, nil
}

// Text returns the reference text without formula framing
func (r *Reference) Text() string {
	return r.text
}

func (r *Reference) Render() string {
	return finalize(r, r.text)
}

func (r *Reference) String() string {
	return r.Render()
}

// reference text decomposition patterns. parsing is a best-effort structural
// split, not full grammar validation.
var (
	workbookPattern = regexp.MustCompile(`^\[([^\[\]]+)\]`)
	sheetPattern    = regexp.MustCompile(`^'([^']+)'!`)
	cellPattern     = regexp.MustCompile(`^(\$?)([A-Za-z]+)(\$?)([0-9]*)$`)
)

// ParsedCell is one cell reference extracted from reference text
type ParsedCell struct {
	Letters   string // alphabetic column token, without its $ marker
	Col       int    // 1-based column index decoded from Letters
	Row       int    // numeric row token, 0 when absent
	AbsColumn bool
	AbsRow    bool
}

// Kind reconstructs the reference kind from the parsed $ markers
func (p ParsedCell) Kind() RefKind {
	switch {
	case p.AbsColumn && p.AbsRow:
		return AbsRef
	case p.AbsRow:
		return AbsRow
	case p.AbsColumn:
		return AbsCol
	default:
		return RelRef
	}
}

// Addr returns the parsed cell as a CellAddr
func (p ParsedCell) Addr() CellAddr {
	return CellAddr{Row: p.Row, Col: p.Col, Kind: p.Kind()}
}

// ParsedRange is the structural decomposition of reference text
type ParsedRange struct {
	Workbook string
	Sheet    string
	Anchor   ParsedCell
	Opposite *ParsedCell // present only for multi-cell ranges
}

// ParseRange decomposes reference text into its structural parts: an
// optional bracketed workbook token, an optional quoted sheet token, then
// one or two colon-separated cell references, each split into its column and
// row tokens with their $ markers.
func ParseRange(text string) (*ParsedRange, error) {
	parsed := &ParsedRange{}
	rest := text

	if match := workbookPattern.FindStringSubmatch(rest); match != nil {
		parsed.Workbook = match[1]
		rest = rest[len(match[0]):]
	}
	if match := sheetPattern.FindStringSubmatch(rest); match != nil {
		parsed.Sheet = match[1]
		rest = rest[len(match[0]):]
	}
	if rest == "" {
		return nil, NewBuildError(ErrCodeMalformedReference, fmt.Sprintf(
			"no range found in reference %q", text))
	}

	cells := strings.SplitN(rest, ":", 2)
	anchor, err := parseCell(cells[0])
	if err != nil {
		return nil, err
	}
	parsed.Anchor = anchor
	if len(cells) == 2 {
		opposite, err := parseCell(cells[1])
		if err != nil {
			return nil, err
		}
		parsed.Opposite = &opposite
	}
	return parsed, nil
}

func parseCell(text string) (ParsedCell, error) {
	match := cellPattern.FindStringSubmatch(text)
	if match == nil {
		return ParsedCell{}, NewBuildError(ErrCodeMalformedReference, fmt.Sprintf(
			"%q is not a cell reference", text))
	}
	cell := ParsedCell{
		Letters:   match[2],
		AbsColumn: match[1] == "$",
		AbsRow:    match[3] == "$",
	}
	col, err := ColumnIndex(cell.Letters)
	if err != nil {
		return ParsedCell{}, err
	}
	cell.Col = col
	if match[4] != "" {
		cell.Row, _ = strconv.Atoi(match[4])
	}
	return cell, nil
}
