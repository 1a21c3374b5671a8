// Package scale reads gross weights from the bench scale. The scale streams
// frames like "[01234]": five digits in hundredths of a kilogram.
package scale

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoReading means the scale has not produced a complete frame
var ErrNoReading = errors.New("scale: no weight reading")

const frameDigits = 5

// ParseFrames extracts every complete weight frame from buffer in arrival order
// and returns the unconsumed tail. Malformed frames are skipped.
func ParseFrames(buffer string) ([]decimal.Decimal, string) {
	var weights []decimal.Decimal
	rest := buffer
	for {
		start := strings.IndexByte(rest, '[')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], ']')
		if end < 0 {
			break
		}
		reading := rest[start+1 : start+end]
		rest = rest[start+end+1:]

		if w, ok := parseReading(reading); ok {
			weights = append(weights, w)
		}
	}
	return weights, rest
}

func parseReading(reading string) (decimal.Decimal, bool) {
	if len(reading) != frameDigits {
		return decimal.Zero, false
	}
	for _, c := range reading {
		if c < '0' || c > '9' {
			return decimal.Zero, false
		}
	}
	hundredths, err := decimal.NewFromString(reading)
	if err != nil {
		return decimal.Zero, false
	}
	return hundredths.Shift(-2), true
}

// FileSource serves the latest weight from a file that the serial poller
// appends raw scale output to.
type FileSource struct {
	Path string
	// MaxAge rejects a reading file not written for longer than this; zero disables the check
	MaxAge time.Duration
	Now    func() time.Time
}

// NewFileSource creates a source reading path
func NewFileSource(path string, maxAge time.Duration) *FileSource {
	return &FileSource{Path: path, MaxAge: maxAge, Now: time.Now}
}

// ReadGrossWeight returns the last complete frame in the reading file
func (s *FileSource) ReadGrossWeight(ctx context.Context) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return decimal.Zero, fmt.Errorf("scale reading file: %w", err)
	}
	if s.MaxAge > 0 {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		if age := now().Sub(info.ModTime()); age > s.MaxAge {
			return decimal.Zero, fmt.Errorf("%w: last reading is %s old", ErrNoReading, age.Round(time.Second))
		}
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return decimal.Zero, fmt.Errorf("scale reading file: %w", err)
	}
	weights, _ := ParseFrames(string(data))
	if len(weights) == 0 {
		return decimal.Zero, ErrNoReading
	}
	return weights[len(weights)-1], nil
}
