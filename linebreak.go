package fixedwidth

// LineBreak is the separator inserted or skipped between records by the
// Reader and Writer. The core codec is agnostic of it; records themselves
// never contain a separator.
type LineBreak int

const (
	// LineBreakNone packs records back to back.
	LineBreakNone LineBreak = iota
	// LineBreakNewline separates records with "\n".
	LineBreakNewline
	// LineBreakCRLF separates records with "\r\n".
	LineBreakCRLF
)

// ByteWidth returns the width in bytes of the separator.
func (lb LineBreak) ByteWidth() int {
	switch lb {
	case LineBreakNewline:
		return 1
	case LineBreakCRLF:
		return 2
	default:
		return 0
	}
}

// Bytes returns the separator bytes, nil for LineBreakNone.
func (lb LineBreak) Bytes() []byte {
	switch lb {
	case LineBreakNewline:
		return []byte("\n")
	case LineBreakCRLF:
		return []byte("\r\n")
	default:
		return nil
	}
}
