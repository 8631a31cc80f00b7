// Package names generates human-readable team names.
package names

import "fmt"

// natoAlphabet is the ordered NATO phonetic alphabet.
var natoAlphabet = []string{
	"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot",
	"Golf", "Hotel", "India", "Juliet", "Kilo", "Lima",
	"Mike", "November", "Oscar", "Papa", "Quebec", "Romeo",
	"Sierra", "Tango", "Uniform", "Victor", "Whiskey", "X-ray",
	"Yankee", "Zulu",
}

// Teams returns count team names built from the NATO phonetic alphabet:
// "Team Alpha" through "Team Zulu", then "Team Alpha 2" and so on for
// counts past 26.
func Teams(count int) []string {
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		cycle := i / len(natoAlphabet)
		word := natoAlphabet[i%len(natoAlphabet)]
		if cycle == 0 {
			out = append(out, fmt.Sprintf("Team %s", word))
		} else {
			out = append(out, fmt.Sprintf("Team %s %d", word, cycle+1))
		}
	}
	return out
}
