// Package display owns what the user currently sees: the chosen unit and the
// last rendered temperature, emoji and description. Surfaces (terminal, HTTP)
// render a View and route user actions through a Controller.
package display

import (
	"github.com/i474232898/weather-app/internal/weather"
)

// State is the mutable display state. It is not safe for concurrent use;
// Controller serializes access.
type State struct {
	Unit        weather.Unit
	Temperature string
	Emoji       string
	Description string
	IsError     bool
	Busy        bool

	// City is the last city whose weather was rendered successfully.
	City string
}

// NewState returns the initial state: Celsius, nothing displayed.
func NewState() *State {
	return &State{Unit: weather.Celsius}
}

// ApplyResult renders a successful fetch in the current unit.
func (s *State) ApplyResult(city string, res weather.Result) {
	s.Temperature = weather.KelvinToDisplay(res.TemperatureKelvin, s.Unit)
	s.Emoji = weather.EmojiForCondition(res.ConditionCode)
	s.Description = res.Description
	s.IsError = false
	s.City = city
}

// ApplyError renders rep in place of the temperature and clears the rest.
func (s *State) ApplyError(rep *weather.ErrorReport) {
	s.Temperature = rep.Message
	s.Emoji = ""
	s.Description = ""
	s.IsError = true
}

// ToggleUnit flips the unit and converts the shown temperature in place.
func (s *State) ToggleUnit() {
	s.Temperature, s.Unit = weather.ToggleUnit(s.Temperature, s.Unit)
}

// View is a read-only snapshot of State for rendering.
type View struct {
	Temperature string `json:"temperature"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	SwitchLabel string `json:"switchLabel"`
	IsError     bool   `json:"isError"`
	Busy        bool   `json:"busy"`
	City        string `json:"city,omitempty"`
}

// View snapshots the state.
func (s *State) View() View {
	return View{
		Temperature: s.Temperature,
		Emoji:       s.Emoji,
		Description: s.Description,
		Unit:        s.Unit.Symbol(),
		SwitchLabel: weather.SwitchLabel(s.Unit),
		IsError:     s.IsError,
		Busy:        s.Busy,
		City:        s.City,
	}
}
