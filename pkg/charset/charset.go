// Package charset defines the alphabets event names are drawn from.
package charset

// Alphabets in the enumeration order inherited from the native cracker, so
// shard boundaries stay compatible with previously recorded checkpoints.
const (
	// First is the alphabet for the first character of an event name.
	First = "abcdefghijklmnopqrstuvwxyz"
	// Rest is the alphabet for every subsequent position.
	Rest = "abcdefghijklmnopqrstuvwxyz_0123456789"
)

// Rules selects which alphabet applies at each candidate position.
type Rules int

const (
	// FirstLetter restricts position 0 to lowercase letters, the Wwise
	// naming rule.
	FirstLetter Rules = iota
	// Legacy draws every position from the full 37-symbol alphabet. Used
	// only for raw prefix generation without the first-letter restriction.
	Legacy
)

// Alphabet returns the alphabet for a candidate position under the rules.
func Alphabet(r Rules, pos int) string {
	if r == FirstLetter && pos == 0 {
		return First
	}
	return Rest
}
