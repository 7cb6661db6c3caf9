package lacrosse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Bank selects the radio a command applies to. The receiver tells banks
// apart by the case of the command letter.
type Bank int

const (
	BankDefault Bank = iota // Unspecified, same as Bank1
	Bank1
	Bank2
)

func (b Bank) valid() bool {
	return b == BankDefault || b == Bank1 || b == Bank2
}

// Op is a configurable radio setting, named by its command letter
type Op byte

const (
	OpFrequency      Op = 'f'
	OpDataRate       Op = 'r'
	OpToggleInterval Op = 't'
	OpToggleMask     Op = 'm'
)

func (o Op) String() string {
	switch o {
	case OpFrequency:
		return "frequency"
	case OpDataRate:
		return "datarate"
	case OpToggleInterval:
		return "toggle-interval"
	case OpToggleMask:
		return "toggle-mask"
	default:
		return fmt.Sprintf("Op(%q)", byte(o))
	}
}

// Value is a configuration value given either as an integer or as its
// decimal text. Both forms encode identically.
type Value struct {
	n      int
	text   string
	isText bool
}

// IntValue wraps an integer configuration value
func IntValue(n int) Value {
	return Value{n: n}
}

// StringValue wraps a decimal string configuration value
func StringValue(s string) Value {
	return Value{text: s, isText: true}
}

func (v Value) String() string {
	if v.isText {
		return v.text
	}
	return strconv.Itoa(v.n)
}

// normalize returns the value as a non-negative integer
func (v Value) normalize() (int, error) {
	n := v.n
	if v.isText {
		var err error
		n, err = strconv.Atoi(strings.TrimSpace(v.text))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v.text)
		}
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidValue, n)
	}
	return n, nil
}

// Encode returns the command bytes setting op to value on bank,
// e.g. "400F" for frequency 400 on bank 2.
func Encode(op Op, value Value, bank Bank) ([]byte, error) {
	switch op {
	case OpFrequency, OpDataRate, OpToggleInterval, OpToggleMask:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidOp, op)
	}

	if !bank.valid() {
		return nil, fmt.Errorf("%w: %d (must be 1 or 2)", ErrInvalidBank, int(bank))
	}

	n, err := value.normalize()
	if err != nil {
		return nil, err
	}

	letter := rune(op)
	if bank == Bank2 {
		letter = unicode.ToUpper(letter)
	}

	return []byte(strconv.Itoa(n) + string(letter)), nil
}

// EncodeLedMode returns the command switching the activity LED on or off
func EncodeLedMode(enabled bool) []byte {
	if enabled {
		return []byte("1a")
	}
	return []byte("0a")
}

// EncodeInfoRequest returns the command asking the receiver to repeat its banner
func EncodeInfoRequest() []byte {
	return []byte("v")
}
