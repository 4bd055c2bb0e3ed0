package sgp4

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/unit"
)

const tleLineLength = 69

// TLE is a parsed two-line element set. Angles are in degrees and mean
// motion in revolutions per day, as printed.
type TLE struct {
	// Line 0 (optional name)
	Name string

	// Line 1 fields
	SatelliteNumber int
	Classification  rune
	International   string // International Designator
	EpochYear       int
	EpochDay        float64
	MeanMotionDot   float64
	MeanMotionDot2  float64
	Bstar           float64
	ElementNumber   int

	// Line 2 fields
	Inclination      float64
	RightAscension   float64
	Eccentricity     float64
	ArgOfPerigee     float64
	MeanAnomaly      float64
	MeanMotion       float64
	RevolutionNumber int
}

// Epoch returns the element set epoch.
func (tle *TLE) Epoch() Epoch {
	return EpochFromYearDay(tle.EpochYear, tle.EpochDay)
}

// EpochTime returns the time.Time representation of the TLE epoch
func (tle *TLE) EpochTime() time.Time {
	return tle.Epoch().Time()
}

// MeanElements converts the printed fields to validated mean elements.
func (tle *TLE) MeanElements() (MeanElements, error) {
	el, err := NewMeanElements(
		tle.Epoch(),
		tle.Eccentricity,
		unit.AngleFromDeg(tle.Inclination),
		unit.AngleFromDeg(tle.RightAscension),
		unit.AngleFromDeg(tle.ArgOfPerigee),
		unit.AngleFromDeg(tle.MeanAnomaly),
		MeanMotionFromRevPerDay(tle.MeanMotion),
		tle.Bstar,
	)
	if err != nil {
		return MeanElements{}, fmt.Errorf("satellite %d: %w", tle.SatelliteNumber, err)
	}
	return el, nil
}

// ParseTLE parses a two-line element set string and returns a TLE struct.
// It accepts either a two-line or three-line format (with satellite name).
func ParseTLE(input string) (*TLE, error) {
	lines := strings.Split(strings.TrimSpace(input), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	if len(lines) < 2 || len(lines) > 3 {
		return nil, fmt.Errorf("invalid TLE: must contain 2 or 3 lines")
	}

	tle := &TLE{}
	if len(lines) == 3 {
		tle.Name = strings.TrimSpace(strings.TrimPrefix(lines[0], "0 "))
		lines = lines[1:]
	}

	for i, line := range lines {
		if len(line) != tleLineLength {
			return nil, fmt.Errorf("invalid TLE: line %d must be %d characters, got %d", i+1, tleLineLength, len(line))
		}
		if err := verifyChecksum(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	if err := tle.parseLine1(lines[0]); err != nil {
		return nil, fmt.Errorf("error parsing line 1: %w", err)
	}
	if err := tle.parseLine2(lines[1]); err != nil {
		return nil, fmt.Errorf("error parsing line 2: %w", err)
	}
	return tle, nil
}

// ParseTLEs parses a catalog of concatenated element sets, with or without
// name lines.
func ParseTLEs(input string) ([]*TLE, error) {
	var (
		out     []*TLE
		pending []string
	)
	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		pending = append(pending, line)
		if !strings.HasPrefix(line, "2 ") {
			continue
		}
		tle, err := ParseTLE(strings.Join(pending, "\n"))
		if err != nil {
			return nil, fmt.Errorf("element set %d: %w", len(out)+1, err)
		}
		out = append(out, tle)
		pending = pending[:0]
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("element set %d: incomplete, %d trailing lines", len(out)+1, len(pending))
	}
	return out, nil
}

func (tle *TLE) parseLine1(line string) error {
	if line[0] != '1' {
		return fmt.Errorf("line 1 must begin with '1'")
	}

	var err error
	if tle.SatelliteNumber, err = atoiField(line, 2, 7, "satellite number"); err != nil {
		return err
	}
	tle.Classification = rune(line[7])
	tle.International = strings.TrimSpace(line[9:17])

	yy, err := atoiField(line, 18, 20, "epoch year")
	if err != nil {
		return err
	}
	// Two digit years from 57 onwards are 19YY.
	if yy < 57 {
		tle.EpochYear = 2000 + yy
	} else {
		tle.EpochYear = 1900 + yy
	}
	if tle.EpochDay, err = floatField(line, 20, 32, "epoch day"); err != nil {
		return err
	}

	// " .00007749", "-.00007749" or " 0.00007749"
	mmd := strings.TrimSpace(line[33:43])
	mmd = strings.Replace(mmd, "-.", "-0.", 1)
	mmd = strings.Replace(mmd, "+.", "0.", 1)
	if strings.HasPrefix(mmd, ".") {
		mmd = "0" + mmd
	}
	if tle.MeanMotionDot, err = strconv.ParseFloat(mmd, 64); err != nil {
		return fmt.Errorf("invalid mean motion dot ('%s'): %w", line[33:43], err)
	}

	if tle.MeanMotionDot2, err = impliedDecimalField(line, 44, 52, "mean motion dot 2"); err != nil {
		return err
	}
	if tle.Bstar, err = impliedDecimalField(line, 53, 61, "B*"); err != nil {
		return err
	}
	if tle.ElementNumber, err = atoiField(line, 64, 68, "element number"); err != nil {
		return err
	}
	return nil
}

func (tle *TLE) parseLine2(line string) error {
	if line[0] != '2' {
		return fmt.Errorf("line 2 must begin with '2'")
	}

	satNum, err := atoiField(line, 2, 7, "satellite number")
	if err != nil {
		return err
	}
	if satNum != tle.SatelliteNumber {
		return fmt.Errorf("satellite numbers do not match between lines (%d vs %d)", tle.SatelliteNumber, satNum)
	}

	fields := []struct {
		dst        *float64
		start, end int
		name       string
	}{
		{&tle.Inclination, 8, 16, "inclination"},
		{&tle.RightAscension, 17, 25, "right ascension"},
		{&tle.ArgOfPerigee, 34, 42, "argument of perigee"},
		{&tle.MeanAnomaly, 43, 51, "mean anomaly"},
		{&tle.MeanMotion, 52, 63, "mean motion"},
	}
	for _, f := range fields {
		if *f.dst, err = floatField(line, f.start, f.end, f.name); err != nil {
			return err
		}
	}

	// Leading decimal point assumed
	eccStr := strings.TrimSpace(line[26:33])
	if tle.Eccentricity, err = strconv.ParseFloat("0."+eccStr, 64); err != nil {
		return fmt.Errorf("invalid eccentricity ('%s'): %w", eccStr, err)
	}

	if tle.RevolutionNumber, err = atoiField(line, 63, 68, "revolution number"); err != nil {
		return err
	}
	return nil
}

func atoiField(line string, start, end int, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(line[start:end]))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func floatField(line string, start, end int, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(line[start:end]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

// impliedDecimalField parses the " SXXXXX±E" exponent notation with an
// assumed leading decimal point, e.g. " 14567-3" is 0.14567e-3.
func impliedDecimalField(line string, start, end int, name string) (float64, error) {
	field := line[start:end]
	mantissaStr := strings.TrimSpace(field[:len(field)-2])
	exponentStr := strings.TrimSpace(field[len(field)-2:])
	if mantissaStr == "" || mantissaStr == "-" || mantissaStr == "+" {
		mantissaStr += "0"
	}
	mantissa, err := strconv.ParseFloat(mantissaStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s mantissa ('%s'): %w", name, mantissaStr, err)
	}
	exponent, err := strconv.Atoi(exponentStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s exponent ('%s'): %w", name, exponentStr, err)
	}
	return mantissa * 1e-5 * math.Pow(10, float64(exponent)), nil
}

// verifyChecksum checks the modulo-10 checksum in the last column. Digits
// count at face value, '-' counts as 1 and everything else is ignored.
func verifyChecksum(line string) error {
	want, err := strconv.Atoi(line[tleLineLength-1:])
	if err != nil {
		return fmt.Errorf("invalid checksum: %w", err)
	}
	if got := calculateChecksum(line); got != want {
		return fmt.Errorf("checksum mismatch: expected %d (from TLE), got %d (calculated)", want, got)
	}
	return nil
}

func calculateChecksum(line string) int {
	sum := 0
	for i := 0; i < tleLineLength-1; i++ {
		switch c := line[i]; {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}
