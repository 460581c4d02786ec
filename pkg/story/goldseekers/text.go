package goldseekers

// MapName is the title of the story's map.
const MapName = "The Underground Realm of the Dread Lord Cthulhu"

// Patterns.
const (
	patternDoor   = `open\s+door|go\s+through`
	patternLeft   = `(left|first)(\s+door)?`
	patternRight  = `(right|second)(\s+door)?`
	patternCenter = `(center|central|third)(\s+door)?`
	patternHoney  = `(take\s+)?(honey|pot)`
	patternTaunt  = `(taunt|scream)(\s+at)?(\s+bear)?`
	patternFlee   = `flee`
	patternHead   = `eat(\s+my)?(\s+head)?|my(\s+head)?|head`
	patternAmount = `(?P<amount>\d+[.,]?\d*|none|nothing|zero)`

	// patternAnything goes last in scenes where every input is final,
	// ahead of the built-in exit command.
	patternAnything = `.*`
)

var nonsense = []string{
	"You haven't really thought that was an option, have you?",
	"That would be stupid, don't you think?",
	"No way. Just no freaking way.",
	"The thought of doing that suddenly gave you chills. No, you won't do that.",
	"That's simply not possible.",
	"It's no use doing that. You should have tried something else.",
}

// excitement maps boredom ceilings to how the adventurer feels.
var excitement = []struct {
	max  int
	mood string
}{
	{2, "enthusiastic"},
	{4, "excited"},
	{6, "active"},
	{8, "calm"},
	{10, "bored"},
	{12, "extremely bored"},
	{14, "fed up with your life"},
}

// moodFor returns the mood for a boredom level, or "" past the last one.
func moodFor(boredom int) string {
	for _, e := range excitement {
		if boredom <= e.max {
			return e.mood
		}
	}
	return ""
}

const (
	msgBoredToDeath = "You were bored to death."
	msgMoodChanged  = "Not advancing is boring. You're now %s."
	msgRefreshed    = "That was refreshing. You're now %s."

	msgEntrance      = "You're at the entrance."
	msgEntranceAgain = "You're still at the entrance."
	msgDoorOpens     = "The door opens. You leap into the doorway!"

	msgFirst      = "You're in a dark room. There are three doors: left, right and center."
	msgFirstAgain = "You're still in the dark room with three doors."
	msgLeft       = "Excellent choice! Or not."
	msgRight      = "Fantastic choice! No, wait, it isn't."
	msgCenter     = "You were asking for trouble."

	msgBear          = "There is a fat bear here. He has a pot of honey. There is a door right before you."
	msgBearAgain     = "The bear is still here."
	msgBearByDoor    = "The bear sits in front of a door."
	msgBearAside     = "The bear sits a few feet away from the door."
	msgHoney         = "The bear looks at you then slaps your face off."
	msgTauntMoved    = "The bear moves away from the door."
	msgTauntAngry    = "The bear gets pissed off and chews your leg off."
	msgDoorPassed    = "The bear didn't even look at you as you passed it."
	msgDoorBlocked   = "The bear eats your belly."
	msgCthulhu       = "You see Cthulhu. You can try to flee or eat your head."
	msgFlee          = "Cthulhu didn't follow you. You got away."
	msgHead          = "You smiled as you ate your head. That was yummy!"
	msgHeadAnyway    = "You didn't feel like doing it and ate your head instead. It was yummy!"
	msgGold          = "This room is full of gold. You should take some."
	msgNotGreedy     = "Nice, you're not greedy!"
	msgGreedy        = "You're greedy bastard!"
	msgDumb          = "You can't even enter a number? You die of dumbness."
	msgLava          = "The room is filled with lava."
	msgLavaDeath     = "You fall to the bottom and die."
	wordNone         = "none"
	wordNothing      = "nothing"
	wordZero         = "zero"
	greedyGoldAmount = 50
)
