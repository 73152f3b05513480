package grid

import "math"

// Вспомогательные функции
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}
