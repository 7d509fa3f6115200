package fat16

import (
	"golang.org/x/text/encoding/unicode"
)

// FilenameUTF16 reconstructs the entry's name as a sequence of UTF-16
// code units: the long filename if any LFN records were accumulated
// ahead of the fundamental entry, otherwise the trimmed 8.3 stem and
// extension concatenated without a separating dot.
func (e *Entry) FilenameUTF16() []uint16 {
	if len(e.lfnEntries) > 0 {
		return decodeLongName(e.lfnEntries)
	}
	return decodeShortName(e.entry)
}

// Name is FilenameUTF16 decoded to a Go string via UTF-16LE, the same
// encoding the on-disk records carry (grounded in soypat/fat's reliance
// on golang.org/x/text for this exact conversion).
func (e *Entry) Name() string {
	units := e.FilenameUTF16()
	raw := make([]byte, 0, len(units)*2)
	for _, u := range units {
		raw = append(raw, byte(u), byte(u>>8))
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.String(string(raw))
	if err != nil {
		return ""
	}
	return out
}

// decodeLongName reassembles a long filename from LFN records
// accumulated in on-disk order, which is the reverse of sequence-number
// order (highest first). Visiting them from last-pushed to first-pushed
// reproduces the original name without needing to sort.
func decodeLongName(records []LongFileNameEntry) []uint16 {
	out := make([]uint16, 0, len(records)*13)
	for i := len(records) - 1; i >= 0; i-- {
		units := records[i].units()
		for _, u := range units {
			if u == 0x0000 {
				return out
			}
			out = append(out, u)
		}
	}
	return out
}

// decodeShortName builds the fallback name from the 8.3 record: the
// overloaded leading byte is resolved, the stem and extension are
// right-trimmed of space padding independently, and no dot is inserted
// between them — callers that want "NAME.EXT" add the dot themselves.
func decodeShortName(e FundamentalEntry) []uint16 {
	name := e.RawName[:]
	if e.Kind() == KindDotEntry {
		name = name[1:]
	} else if name[0] == nameEscapedE5Literal {
		stem := append([]byte{nameDeletedByte}, name[1:]...)
		name = stem
	}

	stem := trimTrailingSpaces(name)
	out := asciiToUTF16(stem)
	out = append(out, asciiToUTF16(trimTrailingSpaces(e.RawExt[:]))...)
	return out
}

func trimTrailingSpaces(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == ' ' {
		i--
	}
	return b[:i]
}

func asciiToUTF16(b []byte) []uint16 {
	out := make([]uint16, len(b))
	for i, c := range b {
		out[i] = uint16(c)
	}
	return out
}
