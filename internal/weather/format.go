package weather

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	absoluteZeroC = 273.15
	absoluteZeroF = 459.67
)

// Emoji for each condition group. Unknown covers every code outside the
// documented ranges.
const (
	EmojiThunderstorm = "⛈️"
	EmojiDrizzle      = "🌦️"
	EmojiRain         = "🌧️"
	EmojiSnow         = "❄️"
	EmojiAtmosphere   = "🌫️"
	EmojiClear        = "☀️"
	EmojiClouds       = "☁️"
	EmojiUnknown      = "❓"
)

// KelvinToDisplay formats a Kelvin reading in unit with one decimal place.
func KelvinToDisplay(tempK float64, unit Unit) string {
	var v float64
	if unit == Fahrenheit {
		v = tempK*9/5 - absoluteZeroF
	} else {
		v = tempK - absoluteZeroC
	}
	return formatTemp(v, unit)
}

// EmojiForCondition maps an OpenWeatherMap condition id onto an emoji.
// Ranges are inclusive and disjoint.
func EmojiForCondition(code int) string {
	switch {
	case code >= 200 && code <= 232:
		return EmojiThunderstorm
	case code >= 300 && code <= 321:
		return EmojiDrizzle
	case code >= 500 && code <= 531:
		return EmojiRain
	case code >= 600 && code <= 622:
		return EmojiSnow
	case code >= 701 && code <= 781:
		return EmojiAtmosphere
	case code == 800:
		return EmojiClear
	case code >= 801 && code <= 804:
		return EmojiClouds
	default:
		return EmojiUnknown
	}
}

// ToggleUnit flips unit and, when text is a formatted temperature, converts
// it to the new unit without another fetch.
//
// A text that carries a unit suffix but no parseable number is returned
// unchanged. This mirrors the desktop client, which swallowed the parse
// failure instead of clearing the stale value.
func ToggleUnit(text string, unit Unit) (string, Unit) {
	next := unit.Other()

	from, ok := suffixUnit(text)
	if !ok {
		return text, next
	}
	if from == next {
		return text, next
	}

	num := strings.TrimSpace(strings.TrimSuffix(text, from.Symbol()))
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return text, next
	}

	if next == Fahrenheit {
		v = v*9/5 + 32
	} else {
		v = (v - 32) * 5 / 9
	}
	return formatTemp(v, next), next
}

// SwitchLabel is the caption of the unit toggle control; it names the unit
// the user would switch to.
func SwitchLabel(unit Unit) string {
	return "Switch to " + unit.Other().Symbol()
}

func suffixUnit(text string) (Unit, bool) {
	switch {
	case strings.HasSuffix(text, Celsius.Symbol()):
		return Celsius, true
	case strings.HasSuffix(text, Fahrenheit.Symbol()):
		return Fahrenheit, true
	default:
		return Celsius, false
	}
}

func formatTemp(v float64, unit Unit) string {
	return fmt.Sprintf("%.1f%s", v, unit.Symbol())
}
