package main

// nudgeDelta maps a movement key to a selection offset. Shifted keys move
// twice as far.
func nudgeDelta(key string) (dx, dy int, ok bool) {
	speed := getMoveSpeed(key)
	switch key {
	case "h", "left", "H", "shift+left":
		return -speed, 0, true
	case "l", "right", "L", "shift+right":
		return speed, 0, true
	case "k", "up", "K", "shift+up":
		return 0, -speed, true
	case "j", "down", "J", "shift+down":
		return 0, speed, true
	}
	return 0, 0, false
}

func getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
