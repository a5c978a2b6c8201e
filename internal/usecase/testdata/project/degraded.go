package project

func broken() int {
	x := 
}

func valid(a int) int { if a > 0 { return 1 }; return 0 }
