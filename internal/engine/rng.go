package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math"
	"strconv"
)

// ByteGenerator produces a deterministic byte stream from an integer seed
// using HMAC-SHA256. The stream is independent of platform and Go version,
// so the same seed always yields the same draws.
type ByteGenerator struct {
	key          []byte
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

// NewByteGenerator creates a byte generator keyed by the decimal
// representation of seed.
func NewByteGenerator(seed int64) *ByteGenerator {
	bg := &ByteGenerator{
		key: []byte(strconv.FormatInt(seed, 10)),
	}

	// Always generate the initial round
	bg.generateRound()

	return bg
}

// Next returns the next byte from the generator
func (bg *ByteGenerator) Next() byte {
	// Check if we need to advance to the next round
	if bg.currentPos >= 32 {
		bg.currentRound++
		bg.currentPos = 0
		bg.generateRound()
	}

	b := bg.buffer[bg.currentPos]
	bg.currentPos++
	return b
}

// NextFloat generates the next float in [0, 1) using exactly 4 bytes
func (bg *ByteGenerator) NextFloat() float64 {
	b0 := bg.Next()
	b1 := bg.Next()
	b2 := bg.Next()
	b3 := bg.Next()

	return bytesToFloat([4]byte{b0, b1, b2, b3})
}

func (bg *ByteGenerator) generateRound() {
	h := hmac.New(sha256.New, bg.key)
	message := fmt.Sprintf("array:%d", bg.currentRound)
	h.Write([]byte(message))
	copy(bg.buffer[:], h.Sum(nil))
}

// bytesToFloat converts exactly 4 bytes to float64 using the specified formula
func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		divider := math.Pow(256, float64(i+1))
		result += float64(b) / divider
	}
	return result
}

// Ints draws count integers uniformly from [min, max] inclusive. Each draw
// consumes one float from the stream and maps it to a discrete value with
// floor(f * span), matching the float discretization used elsewhere in the
// generator. The result is unsorted; callers sort if they need order.
func Ints(seed int64, count, min, max int) []int {
	bg := NewByteGenerator(seed)
	span := float64(max - min + 1)

	out := make([]int, count)
	for i := range out {
		v := min + int(math.Floor(bg.NextFloat()*span))
		if v > max {
			v = max
		}
		out[i] = v
	}
	return out
}
