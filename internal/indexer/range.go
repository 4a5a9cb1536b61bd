package indexer

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockRange represents an inclusive block range.
type BlockRange struct {
	From uint64
	To   uint64
}

// ValidationError reports a missing or unusable block range parameter.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// ParseRange validates the fromBlock/toBlock query values. Empty values count
// as missing; values that are not non-negative base-10 integers are rejected
// the same way. A range with from > to is accepted as is.
func ParseRange(from, to string) (BlockRange, error) {
	fromBlock, err := parseBlock("fromBlock", from)
	if err != nil {
		return BlockRange{}, err
	}
	toBlock, err := parseBlock("toBlock", to)
	if err != nil {
		return BlockRange{}, err
	}
	return BlockRange{From: fromBlock, To: toBlock}, nil
}

func parseBlock(param, input string) (uint64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, &ValidationError{Param: param, Reason: "missing"}
	}
	value, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, &ValidationError{Param: param, Reason: fmt.Sprintf("not a block number: %q", input)}
	}
	return value, nil
}
