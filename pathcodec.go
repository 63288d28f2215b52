package img2adofai

import (
	"fmt"
	"strings"
)

// MidspinAngle is the angle value for a tile with no turn.
const MidspinAngle = 999

// pathAngles maps the absolute path opcodes of the legacy "pathData"
// notation to tile angles in degrees.
var pathAngles = map[rune]float64{
	'R': 0,
	'p': 15,
	'J': 30,
	'E': 45,
	'T': 60,
	'o': 75,
	'U': 90,
	'q': 105,
	'G': 120,
	'Q': 135,
	'H': 150,
	'W': 165,
	'L': 180,
	'x': -165,
	'N': -150,
	'Z': -135,
	'F': -120,
	'V': -105,
	'D': -90,
	'Y': -75,
	'B': -60,
	'C': -45,
	'M': -30,
	'A': -15,
	'!': MidspinAngle,
}

// pathTurns maps the relative opcodes to the turn they add to the
// previous tile's angle: pentagon and heptagon corners.
var pathTurns = map[rune]float64{
	'5': 72,
	'6': -72,
	'7': 360.0 / 7,
	'8': -360.0 / 7,
}

// DecodePath converts a pathData string into angle data, one angle per
// character. Decoding stops at the first character without a mapping,
// and at a relative opcode in first position, since either would leave
// the angles out of step with the tiles.
func DecodePath(path string) ([]float64, error) {
	angles := make([]float64, 0, len(path))
	index := 0
	for _, c := range path {
		if a, ok := pathAngles[c]; ok {
			angles = append(angles, a)
		} else if turn, ok := pathTurns[c]; ok && len(angles) > 0 {
			angles = append(angles, angles[len(angles)-1]+turn)
		} else {
			return nil, &UnknownOpcodeError{Char: c, Index: index}
		}
		index++
	}
	return angles, nil
}

// EncodeAngles is the inverse of DecodePath for absolute angles. It
// fails on any angle without an opcode of its own.
func EncodeAngles(angles []float64) (string, error) {
	var b strings.Builder
	b.Grow(len(angles))
	for i, a := range angles {
		c, ok := angleOpcodes[a]
		if !ok {
			return "", fmt.Errorf("%w: angle %v at index %d has no path opcode",
				ErrInvalidParameter, a, i)
		}
		b.WriteRune(c)
	}
	return b.String(), nil
}

var angleOpcodes = func() map[float64]rune {
	m := make(map[float64]rune, len(pathAngles))
	for c, a := range pathAngles {
		m[a] = c
	}
	return m
}()
