package weather

// Unit is the temperature scale currently shown to the user.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// Symbol returns the suffix appended to formatted temperatures.
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Other returns the unit a toggle would switch to.
func (u Unit) Other() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// Query identifies the city a user asked for.
// City is trimmed before validation.
type Query struct {
	City string `json:"city" validate:"required"`
}

// Result is a single successful current-conditions reading.
// It is built once per fetch and never mutated.
type Result struct {
	TemperatureKelvin float64 `json:"temperatureKelvin"`
	Description       string  `json:"description"`
	ConditionCode     int     `json:"conditionCode"`
}
