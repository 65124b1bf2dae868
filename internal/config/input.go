package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/san-kum/cycloid/internal/dynamo"
)

// ParseNumber applies the console input rule: the trimmed input is used only
// if, with every '.' removed, it is a non-empty run of decimal digits. Digits
// from any script count ("２", "٣") and are read by their value. Anything
// else (empty, signs, exponents, letters) yields def.
func ParseNumber(input string, def float64) float64 {
	s := strings.TrimSpace(input)
	if strings.ReplaceAll(s, ".", "") == "" {
		return def
	}

	var ascii strings.Builder
	for _, r := range s {
		switch {
		case r == '.':
			ascii.WriteRune(r)
		case unicode.IsDigit(r):
			ascii.WriteRune('0' + digitValue(r))
		default:
			return def
		}
	}

	v, err := strconv.ParseFloat(ascii.String(), 64)
	if err != nil {
		return def
	}
	return v
}

// digitValue returns the value of a decimal digit rune. Decimal digits are
// encoded in runs of whole 0-9 sets, each starting at zero.
func digitValue(r rune) rune {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return (r - start) % 10
}

// Prompt writes "Enter circle <label> (by default <def>):" and reads one line.
// A value that passes the digit rule but is not positive, such as "0", is
// replaced by def with a warning on w. It returns ctx.Err() if ctx is done
// before a line arrives.
func Prompt(ctx context.Context, r *bufio.Reader, w io.Writer, label string, def float64) (float64, error) {
	fmt.Fprintf(w, "Enter circle %s (by default %g):\n", label, def)

	line, err := readLine(ctx, r)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}

	v := ParseNumber(line, def)
	if dynamo.CheckPositive(label, v) != nil {
		fmt.Fprintf(w, "%s must be positive, using default %g\n", label, def)
		return def, nil
	}
	return v, nil
}

// readLine reads up to '\n' without blocking past ctx. After a cancel the
// reader must not be used again.
func readLine(ctx context.Context, r *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

// PromptParams asks for radius, then velocity.
func PromptParams(ctx context.Context, in io.Reader, out io.Writer, def dynamo.Params) (dynamo.Params, error) {
	r := bufio.NewReader(in)

	radius, err := Prompt(ctx, r, out, "radius", def.Radius)
	if err != nil {
		return dynamo.Params{}, err
	}
	velocity, err := Prompt(ctx, r, out, "velocity", def.Velocity)
	if err != nil {
		return dynamo.Params{}, err
	}
	return dynamo.Params{Radius: radius, Velocity: velocity}, nil
}
