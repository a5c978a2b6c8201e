package project

// Grade maps a score to a letter.
func Grade(score int) string {
	if score > 90 {
		return "A"
	}
	if score > 80 {
		return "B"
	}
	if score > 70 {
		return "C"
	}
	if score > 60 && score < 100 {
		return "D"
	}
	for i := 0; i < 3; i++ {
		score++
	}
	return "F"
}
