package coin

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/kitties/errors"
)

// ErrCurrency is returned for a ticker that is not a currency code.
var ErrCurrency = errors.Register(30, "invalid currency code")

var validTicker = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxInt bounds the whole part, in both directions.
	MaxInt int64 = 1e15 - 1
	// FracUnit is the number of fractional units in one whole.
	FracUnit int64 = 1e9
)

// Coin is an amount of a single currency, Whole + Fractional/FracUnit. Both
// parts carry the same sign.
type Coin struct {
	Whole      int64  `json:"whole"`
	Fractional int64  `json:"fractional"`
	Ticker     string `json:"ticker"`
}

func NewCoin(whole, fractional int64, ticker string) Coin {
	return Coin{Whole: whole, Fractional: fractional, Ticker: ticker}
}

func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

// IsPositive is true for an amount above zero.
func (c Coin) IsPositive() bool {
	return c.Whole > 0 || (c.Whole == 0 && c.Fractional > 0)
}

// Clone returns a copy, or nil for a nil coin.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate checks the ticker, the range of both parts and that their signs
// agree. Negative amounts are valid.
func (c Coin) Validate() error {
	var errs error
	if !validTicker(c.Ticker) {
		errs = errors.Append(errs, errors.Wrapf(ErrCurrency, "ticker %q", c.Ticker))
	}
	if c.Whole > MaxInt || c.Whole < -MaxInt {
		errs = errors.Append(errs, errors.Wrap(errors.ErrOverflow, "whole"))
	}
	if c.Fractional >= FracUnit || c.Fractional <= -FracUnit {
		errs = errors.Append(errs, errors.Wrap(errors.ErrOverflow, "fractional"))
	}
	if (c.Whole < 0 && c.Fractional > 0) || (c.Whole > 0 && c.Fractional < 0) {
		errs = errors.Append(errs, errors.Wrap(errors.ErrState, "whole and fractional signs differ"))
	}
	return errs
}

// String returns "<whole>[.<fractional>] <ticker>", without trailing zeros
// in the fractional part.
func (c Coin) String() string {
	whole, frac := c.Whole, c.Fractional
	var sb strings.Builder
	if whole < 0 || frac < 0 {
		sb.WriteByte('-')
		whole, frac = -whole, -frac
	}
	sb.WriteString(strconv.FormatInt(whole, 10))
	if frac != 0 {
		digits := strconv.FormatInt(frac+FracUnit, 10)[1:]
		sb.WriteByte('.')
		sb.WriteString(strings.TrimRight(digits, "0"))
	}
	if c.Ticker != "" {
		sb.WriteByte(' ')
		sb.WriteString(c.Ticker)
	}
	return sb.String()
}
