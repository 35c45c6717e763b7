// Package demo holds small language-feature examples: default arguments,
// slice transforms, value versus reference semantics, a custom error type,
// file round-trips and JSON encoding.
package demo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Greet writes "Hello, <name>!" times times. An empty name greets the
// world and a non-positive count greets once.
func Greet(w io.Writer, name string, times int) error {
	if name == "" {
		name = "world"
	}
	if times < 1 {
		times = 1
	}
	for range times {
		if _, err := fmt.Fprintf(w, "Hello, %s!\n", name); err != nil {
			return err
		}
	}
	return nil
}

func Square(x int) int { return x * x }

// SquareAll returns the square of every element, in order.
func SquareAll(xs []int) []int {
	return lo.Map(xs, func(x int, _ int) int { return Square(x) })
}

// EvenSquares squares the even elements and drops the odd ones.
func EvenSquares(xs []int) []int {
	return lo.FilterMap(xs, func(x int, _ int) (int, bool) {
		if x%2 != 0 {
			return 0, false
		}
		return Square(x), true
	})
}

// ReplaceInSlice sets s[i] = v. The caller's slice sees the change.
func ReplaceInSlice(s []int, i, v int) {
	s[i] = v
}

// ReplaceInArray sets a[i] = v on a copy; the caller's array is unchanged.
func ReplaceInArray(a [3]int, i, v int) [3]int {
	a[i] = v
	return a
}

var ErrDivisionByZero = errors.New("division by zero is not allowed")

// DivisionError reports an attempt to divide Dividend by zero.
type DivisionError struct {
	Dividend int
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("divide %d: %v", e.Dividend, ErrDivisionByZero)
}

func (e *DivisionError) Unwrap() error { return ErrDivisionByZero }

// Divide returns a / b, or a *DivisionError when b is zero.
func Divide(a, b int) (float64, error) {
	if b == 0 {
		return 0, &DivisionError{Dividend: a}
	}
	return float64(a) / float64(b), nil
}

// SafeDivide is Divide with the error logged and replaced by +Inf.
func SafeDivide(logger *zap.Logger, a, b int) float64 {
	q, err := Divide(a, b)
	if err != nil {
		logger.Warn("division failed", zap.Error(err))
		return math.Inf(1)
	}
	return q
}

// WriteText replaces the contents of path with text.
func WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadText returns the contents of path.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

type Person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
	City string `json:"city"`
}

func EncodePerson(p Person) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode person: %w", err)
	}
	return data, nil
}

func DecodePerson(data []byte) (Person, error) {
	var p Person
	if err := json.Unmarshal(data, &p); err != nil {
		return Person{}, fmt.Errorf("decode person: %w", err)
	}
	return p, nil
}
