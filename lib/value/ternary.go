package value

// Ternary is the result of a query that may be blocked by missing
// information, following SQL three-valued logic.
type Ternary uint8

const (
	TernaryFalse Ternary = iota
	TernaryTrue
	TernaryNull
)

func TernaryOf(b bool) Ternary {
	if b {
		return TernaryTrue
	}
	return TernaryFalse
}

func (t Ternary) IsTrue() bool  { return t == TernaryTrue }
func (t Ternary) IsFalse() bool { return t == TernaryFalse }
func (t Ternary) IsNull() bool  { return t == TernaryNull }

func (t Ternary) Not() Ternary {
	switch t {
	case TernaryTrue:
		return TernaryFalse
	case TernaryFalse:
		return TernaryTrue
	}
	return TernaryNull
}

func (t Ternary) And(o Ternary) Ternary {
	switch {
	case t == TernaryFalse || o == TernaryFalse:
		return TernaryFalse
	case t == TernaryTrue && o == TernaryTrue:
		return TernaryTrue
	}
	return TernaryNull
}

func (t Ternary) Or(o Ternary) Ternary {
	switch {
	case t == TernaryTrue || o == TernaryTrue:
		return TernaryTrue
	case t == TernaryFalse && o == TernaryFalse:
		return TernaryFalse
	}
	return TernaryNull
}

func (t Ternary) String() string {
	switch t {
	case TernaryTrue:
		return "true"
	case TernaryFalse:
		return "false"
	}
	return "null"
}
