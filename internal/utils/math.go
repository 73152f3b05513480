// internal/utils/math.go
package utils

// Lerp выполняет стандартную линейную интерполяцию
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
