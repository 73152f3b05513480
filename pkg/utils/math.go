package utils

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle нормализует угол в диапазон [-π, π]
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// EqualSpacing возвращает i-й из n равномерно разнесённых углов.
func EqualSpacing(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi * float64(i) / float64(n)
}
