package asm

import "fmt"

// directiveSize returns the number of bytes a directive contributes to
// the program image during Pass 1's sizing walk. .org and .const
// contribute nothing to the byte stream; they only affect assembler
// state.
func directiveSize(lineNo int, d *Directive) (int, error) {
	switch d.Name {
	case "org", "const":
		return 0, nil
	case "byte":
		n := 0
		for _, it := range d.Items {
			if it.IsString {
				n += len(it.Str)
			} else {
				n++
			}
		}
		return n, nil
	case "word":
		return len(d.Items) * 2, nil
	case "text":
		return len(d.Text), nil
	case "include":
		return 0, &SourceLineError{Line: lineNo, Err: fmt.Errorf(".include must be expanded by the caller before assembly")}
	}
	return 0, &UnknownDirectiveError{Line: lineNo, Name: d.Name}
}
