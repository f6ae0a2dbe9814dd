package game

// Command is a single order sent along with a step. It is encoded as JSON
// exactly as the engine's command queue expects it.
type Command map[string]any

// Walk orders the units to move to (x, z).
func Walk(units []Unit, x, z float64) Command {
	return Command{
		"type":     "walk",
		"entities": IDs(units),
		"x":        x,
		"z":        z,
		"queued":   false,
	}
}

// Attack orders the units to attack the target.
func Attack(units []Unit, target Unit) Command {
	return Command{
		"type":         "attack",
		"entities":     IDs(units),
		"target":       target.ID,
		"queued":       false,
		"allowCapture": false,
	}
}

// Chat posts a message to the in-game chat.
func Chat(message string) Command {
	return Command{
		"type":    "aichat",
		"message": message,
	}
}
