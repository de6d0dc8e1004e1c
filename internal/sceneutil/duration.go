package sceneutil

import (
	"math"
	"strings"
)

const (
	// wordsPerSecond is an average speaking rate of 150 words per minute.
	wordsPerSecond = 2.5
	// transitionPadding pads the estimate for action and scene transitions.
	transitionPadding = 1.2
)

// Duration estimates how many seconds the text takes on screen.
func Duration(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Round(float64(words) / wordsPerSecond * transitionPadding))
}
