package project

func Sign(a int) int {
	if a > 0 {
		return 1
	}
	return 0
}

func Empty() {}
