// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService — обёртка над генератором случайных чисел,
// единственный seeded поток на весь мир симуляции.
type PRNGService struct {
	rng   *rand.Rand
	seed  int64
	draws uint64
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed возвращает сид, с которым был создан поток.
func (s *PRNGService) Seed() int64 { return s.seed }

// Draws возвращает количество выборок из потока.
func (s *PRNGService) Draws() uint64 { return s.draws }

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	s.draws++
	return s.rng.Intn(n)
}

// Float64 возвращает случайное число с плавающей точкой в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	s.draws++
	return s.rng.Float64()
}

// Range возвращает число в [min, max]. При min >= max поток не расходуется.
func (s *PRNGService) Range(min, max float64) float64 {
	if min >= max {
		return min
	}
	return Lerp(min, max, s.Float64())
}

// Chance возвращает true с вероятностью p (0..1). Крайние значения не расходуют поток.
func (s *PRNGService) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float64() < p
}

// Signed возвращает число в [-amplitude, amplitude].
func (s *PRNGService) Signed(amplitude float64) float64 {
	if amplitude == 0 {
		return 0
	}
	return (s.Float64()*2 - 1) * amplitude
}
