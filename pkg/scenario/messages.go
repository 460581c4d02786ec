package scenario

// Catalog keys used by the engine itself.
const (
	MsgFirstEnter = "You're standing in some nondescript room."
	MsgEnterAgain = "How did you do that, cheater?"
	MsgGoodbye    = "Goodbye!"
	MsgCantParse  = "I don't understand that."
	MsgWelcome    = "Welcome, player %s to the map %s!"

	// DefaultMapName and DefaultPlayerName are offered to drivers that need
	// a name when none was given.
	DefaultMapName    = "Very Small Dungeon"
	DefaultPlayerName = "Nameless"

	PatternExit = `(exit|quit)(\s+game)?`
)
