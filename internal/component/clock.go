package component

// TimeEpsilon — допуск сравнения моментов игрового времени.
const TimeEpsilon = 1e-9

// Reached reports whether the moment at has come by now. Timed statuses,
// DoTs and effects expire once their end time is reached.
func Reached(now, at float64) bool { return now >= at-TimeEpsilon }

// Passed reports whether the moment at lies strictly behind now.
func Passed(now, at float64) bool { return now > at+TimeEpsilon }
