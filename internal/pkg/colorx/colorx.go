/*
Package colorx assigns stable per-user avatar colors.

The color is a pure function of the user ID, so every client and every
server restart agrees on it without coordination or storage.
*/
package colorx

import "hash/fnv"

// palette holds the avatar colors, chosen to stay distinguishable against
// the arena background.
var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#fffac8", "#800000",
	"#aaffc3", "#808000", "#ffd8b1", "#000075", "#808080",
}

// ForUser returns the palette color for the given user ID.
// The same ID always maps to the same color.
func ForUser(userID string) string {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return palette[h.Sum32()%uint32(len(palette))]
}
