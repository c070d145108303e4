package ui

import "math/rand"

var affirmations = []string{
	"Cool",
	"Nice",
	"Doing great",
	"Awesome",
	"Okey dokey",
	"Neat",
	"Whoo",
	"Wonderful",
	"Splendid",
}

// Affirmation returns a random acknowledgment for button answers.
func Affirmation() string {
	return affirmations[rand.Intn(len(affirmations))]
}
