package framing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bgallie/saes/cryptors"
)

// ErrEmpty is returned when a block list holds no tokens.
var ErrEmpty = errors.New("framing: no blocks given")

// ParseError reports a token that is not a 16 bit hexadecimal value.
type ParseError struct {
	Index int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("framing: token %d %q is not a 16 bit hex value: %v", e.Index, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatBlock renders blk as four upper case hex digits.
func FormatBlock(blk cryptors.Block) string {
	return fmt.Sprintf("%04X", uint16(blk))
}

// FormatBlocks renders blocks as space separated four digit hex tokens,
// e.g. "04D2 1A2F".
func FormatBlocks(blocks []cryptors.Block) string {
	tokens := make([]string, len(blocks))
	for i, blk := range blocks {
		tokens[i] = FormatBlock(blk)
	}
	return strings.Join(tokens, " ")
}

// ParseBlock parses one hex token with an optional 0x prefix.
func ParseBlock(token string) (cryptors.Block, error) {
	t := token
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		t = t[2:]
	}
	v, err := strconv.ParseUint(t, 16, 16)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return 0, &ParseError{Token: token, Err: err}
	}
	return cryptors.Block(v), nil
}

// ParseBlocks parses whitespace separated hex tokens.  The first bad token
// is reported as a *ParseError carrying its position.
func ParseBlocks(s string) ([]cryptors.Block, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, ErrEmpty
	}
	blocks := make([]cryptors.Block, len(tokens))
	for i, tok := range tokens {
		blk, err := ParseBlock(tok)
		if err != nil {
			pe := err.(*ParseError)
			pe.Index = i
			return nil, pe
		}
		blocks[i] = blk
	}
	return blocks, nil
}
