package document

// Style describes the visual attributes shared by every character of a run.
// It is a small comparable value; style equality is what drives run
// coalescing. Colors are kept as strings (hex or a name the presentation
// layer understands); an empty color means the terminal default.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool

	Foreground string
	Background string
}

// Plain is the zero style: default colors, no attributes.
var Plain = Style{}
