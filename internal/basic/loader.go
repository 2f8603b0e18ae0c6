package basic

import "fmt"

// System addresses the loader relies on.
const (
	// ScreenAddress is where a screen image is loaded.
	ScreenAddress uint16 = 16384
	// OutputRoutineVar is the low byte of the channel output routine address
	// (system variable area). Poking OutputMute points it at a plain "ret" in
	// ROM (0x096F), which silences the "Bytes: name" messages while loading.
	OutputRoutineVar = 23739
	OutputMute       = 111
	OutputRestore    = 244
)

const (
	firstLineNumber = 10
	lineStep        = 10
)

// ClearMemory reserves memory below addr+1.
func ClearMemory(addr uint16) Line {
	return Line{Text: text{}.tok(TokClear).val(int(addr))}
}

// SetColors sets black border and paper, white ink, and clears the screen.
func SetColors() Line {
	t := text{}.tok(TokBorder).val(0).str(":")
	t = t.tok(TokPaper).val(0).str(":")
	t = t.tok(TokInk).val(7).str(":")
	return Line{Text: t.tok(TokCls)}
}

// PokeOutputRedirect pokes value into the output routine system variable.
func PokeOutputRedirect(value int) Line {
	return Line{Text: text{}.tok(TokPoke).val(OutputRoutineVar).str(",").val(value)}
}

// LoadNextBlock loads the next tape block as code. A nil addr uses the
// address from the block's header.
func LoadNextBlock(addr *uint16) Line {
	t := text{}.tok(TokLoad).str(`""`).tok(TokCode)
	if addr != nil {
		t = t.val(int(*addr))
	}
	return Line{Text: t}
}

// Launch calls the machine code at addr.
func Launch(addr uint16) Line {
	return Line{Text: text{}.tok(TokRandomize, TokUsr).val(int(addr))}
}

// LoaderOptions parameterizes BuildLoader.
type LoaderOptions struct {
	LoadAddress uint16
	ExecAddress uint16
	// Screen adds a step loading a screen image before the code.
	Screen bool
}

// LoaderLines returns the loader steps in order, numbered 10, 20, 30...
func LoaderLines(o LoaderOptions) []Line {
	screen := ScreenAddress
	steps := []Line{
		ClearMemory(o.LoadAddress - 1),
		SetColors(),
		PokeOutputRedirect(OutputMute),
	}
	if o.Screen {
		steps = append(steps, LoadNextBlock(&screen))
	}
	steps = append(steps,
		LoadNextBlock(nil),
		PokeOutputRedirect(OutputRestore),
		Launch(o.ExecAddress),
	)
	for i := range steps {
		steps[i].Number = uint16(firstLineNumber + i*lineStep)
	}
	return steps
}

// BuildLoader returns the encoded loader listing.
func BuildLoader(o LoaderOptions) ([]byte, error) {
	var listing []byte
	for _, l := range LoaderLines(o) {
		b, err := l.Encode()
		if err != nil {
			return nil, fmt.Errorf("build loader: %w", err)
		}
		listing = append(listing, b...)
	}
	return listing, nil
}
