package weather

import (
	"strconv"
	"strings"
)

// BuildPayload turns a provider reading into the display payload served by
// /search. Numbers are rendered with their unit suffix for the requested
// units system.
func BuildPayload(r Reading, unit Units) Payload {
	tempSuffix := "° F"
	speedSuffix := " mph"
	if unit == UnitsMetric {
		tempSuffix = "° C"
		speedSuffix = " mps"
	}

	return Payload{
		Coords: r.Coords,
		Time: SunTime{
			Sunrise: r.Sunrise,
			Sunset:  r.Sunset,
		},
		Weather: Conditions{
			Description: strings.TrimSpace(r.Description),
			Humidity:    formatNumber(r.HumidityPct) + "%",
			Main:        r.Main,
			Pressure:    formatNumber(r.PressureHpa) + " hPa",
			Temperature: Temperature{
				FeelsLike:  formatNumber(r.FeelsLike) + tempSuffix,
				TempActual: formatNumber(r.Temp) + tempSuffix,
				TempMin:    formatNumber(r.TempMin) + tempSuffix,
				TempMax:    formatNumber(r.TempMax) + tempSuffix,
			},
			Wind: Wind{
				Direction: formatNumber(r.WindDeg) + "°",
				Speed:     formatNumber(r.WindSpeed) + speedSuffix,
			},
			Visibility: formatNumber(r.VisibilityM/1000) + " km",
		},
		Name: r.Name,
	}
}

// formatNumber prints v with at most two decimals and no trailing zeros.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
