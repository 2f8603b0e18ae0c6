// Package basic encodes and decodes tokenized ZX BASIC listings.
//
// A listing is a plain concatenation of lines. Each line is stored as:
//
//	2 bytes: line number (big endian)
//	2 bytes: length of text + terminator (little endian)
//	n bytes: text (keyword tokens and literal characters)
//	1 byte:  terminator (0x0D)
//
// Statements on one line are separated by ':' like in ASCII.
package basic

// Keyword tokens used by the bootstrap loader.
const (
	TokCode      byte = 0xAF
	TokVal       byte = 0xB0
	TokUsr       byte = 0xC0
	TokInk       byte = 0xD9
	TokPaper     byte = 0xDA
	TokBorder    byte = 0xE7
	TokRem       byte = 0xEA
	TokLoad      byte = 0xEF
	TokPoke      byte = 0xF4
	TokRandomize byte = 0xF9
	TokCls       byte = 0xFB
	TokClear     byte = 0xFD
)

const (
	// Terminator ends every line ("enter").
	Terminator byte = 0x0D
	// numberMarker is followed by the 5-byte hidden form of a numeric literal.
	numberMarker byte = 0x0E
	numberSize        = 5
	firstKeyword byte = 0xA5
)

// keywords maps the 48K token range 0xA5..0xFF to its keyword text.
var keywords = [...]string{
	"RND", "INKEY$", "PI", "FN", "POINT", "SCREEN$", "ATTR", "AT", "TAB",
	"VAL$", "CODE", "VAL", "LEN", "SIN", "COS", "TAN", "ASN", "ACS", "ATN",
	"LN", "EXP", "INT", "SQR", "SGN", "ABS", "PEEK", "IN", "USR", "STR$",
	"CHR$", "NOT", "BIN", "OR", "AND", "<=", ">=", "<>", "LINE", "THEN",
	"TO", "STEP", "DEF FN", "CAT", "FORMAT", "MOVE", "ERASE", "OPEN #",
	"CLOSE #", "MERGE", "VERIFY", "BEEP", "CIRCLE", "INK", "PAPER", "FLASH",
	"BRIGHT", "INVERSE", "OVER", "OUT", "LPRINT", "LLIST", "STOP", "READ",
	"DATA", "RESTORE", "NEW", "BORDER", "CONTINUE", "DIM", "REM", "FOR",
	"GO TO", "GO SUB", "INPUT", "LOAD", "LIST", "LET", "PAUSE", "NEXT",
	"POKE", "PRINT", "PLOT", "RUN", "SAVE", "RANDOMIZE", "IF", "CLS", "DRAW",
	"CLEAR", "RETURN", "COPY",
}

// Keyword returns the keyword text for token b.
func Keyword(b byte) (string, bool) {
	if b < firstKeyword {
		return "", false
	}
	return keywords[b-firstKeyword], true
}
