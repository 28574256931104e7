// Package soc estimates the state of charge of a lead-acid battery from a
// single open-circuit voltage reading. Readings at or beyond the ends of
// the calibration table are clamped to the end values; readings in between
// are linearly interpolated between the two surrounding points and rounded
// to one decimal (ties to even unless RoundHalfAwayFromZero is selected).
package soc
