package calc_go

const kMaxDecimalDigits = 10

// / Result of scanning one numeric literal.
type Argument struct {
	Value float64
	// End is the index just past the last consumed character.
	End int
	// Valid is false when scanning stopped on an unexpected character.
	Valid bool
	// Diag is set on a parse error, or when the digit budget left a suffix.
	Diag *Diagnostic
}

// / Consumed reports whether anything was scanned starting at cursor.
func (a Argument) Consumed(cursor int) bool { return a.End > cursor }

// / Parse a decimal literal from text starting at cursor: at most
// / kMaxDecimalDigits digits and a single '.', no sign and no exponent.
func ParseArgument(text string, cursor int) Argument {
	res := 0.0
	fraction := 1.0
	integer := true
	count := 0
	good := true
	i := cursor
	for good && i < len(text) && count < kMaxDecimalDigits {
		c := text[i]
		switch {
		case isDigit(c):
			if integer {
				res = res*10 + float64(c-'0')
			} else {
				fraction /= 10
				res += float64(c-'0') * fraction
			}
			i++
			count++
		case c == '.' && integer:
			integer = false
			i++
		default:
			good = false
		}
	}

	arg := Argument{Value: res, End: i, Valid: good}
	if !good {
		arg.Diag = newDiagnostic(ArgumentParseError, "argument parsing error at %d: '%s'", i, text[i:])
	} else if i < len(text) {
		arg.Diag = newDiagnostic(ArgumentTrailingSuffix, "argument isn't fully parsed, suffix left: '%s'", text[i:])
	}
	return arg
}
