package songbook

import "math/rand/v2"

// ConfidenceLevel names a band of self-rated confidence (0-100)
type ConfidenceLevel struct {
	Threshold   int    `json:"threshold"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ConfidenceLevels in ascending threshold order
var ConfidenceLevels = []ConfidenceLevel{
	{0, "Frosty the Off-Key Snowman", "No clue what key you’re in. Might be humming “Jingle Bells” during “Silent Night.”"},
	{10, "Lip-Syncing Elf", "You know the words... if someone else starts singing first."},
	{25, "Book-Hugging Caroler", "You’re singing, but that rehearsal book is glued to your hands."},
	{40, "With Podcast Sleigh Ride", "You sound great, as long as the rehearsal recording is playing in your ear."},
	{55, "No Podcast, Minor Panic", "Trying it a cappella. You’re one verse away from rejoining the podcast."},
	{70, "Book in Pocket, Mostly Guessing", "You’ve memorized 80% of the lyrics and confidently fake the rest."},
	{85, "Quartet Sleigh Power", "With three friends harmonizing, you could melt Frosty himself."},
	{100, "Off-Book, On a Street Corner, Child Kicking Your Shins", "You’re unstoppable. You are Christmas spirit incarnate."},
}

// ConfidenceLevelFor returns the highest level whose threshold is <= value.
// Values below zero get the lowest level.
func ConfidenceLevelFor(value int) ConfidenceLevel {
	level := ConfidenceLevels[0]
	for _, l := range ConfidenceLevels {
		if value >= l.Threshold {
			level = l
		}
	}
	return level
}

// LoadingPuns are shown while feeds load
var LoadingPuns = []string{
	"Wrapping up the playlist...",
	"Making a list, and checking it twice...",
	"Don't get your tinsel in a tangle...",
	"Decking the halls with data...",
	"Hold on for deer life...",
	"Yule be singing in no time...",
	"Tuning the sleigh bells...",
	"Fetching the figgy pudding...",
	"Sleighing the data request...",
	"Just a silent night while this loads...",
	"The elf-service is a little slow today...",
}

// RandomPun picks a loading pun
func RandomPun() string {
	return LoadingPuns[rand.IntN(len(LoadingPuns))]
}
