package math

import m "math"

type angleUnit uint8

const (
	unitDegrees angleUnit = iota
	unitRadians
)

const (
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float64 = m.Pi / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float64 = 180.0 / m.Pi
)

// Angle keeps the unit it was built with and converts on read, so a value
// created with Degrees(90) reports exactly 90 degrees.
type Angle struct {
	value float64
	unit  angleUnit
}

func Degrees(degrees float64) Angle {
	return Angle{value: degrees, unit: unitDegrees}
}

func Radians(radians float64) Angle {
	return Angle{value: radians, unit: unitRadians}
}

func (a Angle) Degrees() float64 {
	if a.unit == unitDegrees {
		return a.value
	}
	return RadToDeg(a.value)
}

func (a Angle) Radians() float64 {
	if a.unit == unitRadians {
		return a.value
	}
	return DegToRad(a.value)
}

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float64) float64 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float64) float64 {
	return radians * K_RAD2DEG_MULTIPLIER
}
