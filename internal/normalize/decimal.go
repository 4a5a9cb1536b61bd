package normalize

import (
	"fmt"
	"math"
	"math/big"

	ethmath "github.com/ethereum/go-ethereum/common/math"
)

// Decimalize converts a raw integer amount into a human-scale quantity,
// raw / 10^decimals, with float64 division semantics.
func Decimalize(raw string, decimals uint8) (float64, error) {
	value, err := rawFloat(raw)
	if err != nil {
		return 0, err
	}
	if value == 0 || decimals == 0 {
		return value, nil
	}
	return value / math.Pow10(int(decimals)), nil
}

// rawFloat rounds a raw integer amount to the nearest float64.
func rawFloat(raw string) (float64, error) {
	value, err := parseAmount(raw)
	if err != nil {
		return 0, err
	}
	f, _ := new(big.Float).SetInt(value).Float64()
	return f, nil
}

func parseAmount(raw string) (*big.Int, error) {
	if raw == "" {
		return new(big.Int), nil
	}
	if !isDigits(raw) {
		return nil, fmt.Errorf("invalid amount: %q", raw)
	}
	value, ok := ethmath.ParseBig256(raw)
	if !ok {
		return nil, fmt.Errorf("amount exceeds 256 bits: %s", raw)
	}
	return value, nil
}

func isDigits(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
