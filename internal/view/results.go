package view

import (
	"fmt"
	"time"

	"github.com/i474232898/weather-search/internal/common"
	"github.com/i474232898/weather-search/internal/weather"
)

// ReadableTime formats an epoch value as UTC "H:M" without zero padding.
// The value is read as epoch milliseconds, so provider epoch seconds land
// in the first weeks of 1970; see DESIGN.md before changing this.
func ReadableTime(epoch int64) string {
	t := time.UnixMilli(epoch).UTC()
	return fmt.Sprintf("%d:%d", t.Hour(), t.Minute())
}

// RenderResults returns the result card lines for payload, or nil when
// there is no payload.
func RenderResults(city string, p *weather.Payload) []string {
	if p == nil {
		return nil
	}

	w := p.Weather
	temp := w.Temperature

	return []string{
		city,
		fmt.Sprintf("%s and %s", temp.TempActual, w.Main),
		fmt.Sprintf("Feels Like: %s", temp.FeelsLike),
		fmt.Sprintf("High: %s Low: %s", temp.TempMax, temp.TempMin),
		fmt.Sprintf("Humidity: %s", w.Humidity),
		fmt.Sprintf("Pressure: %s", w.Pressure),
		fmt.Sprintf("Visibility: %s", w.Visibility),
		fmt.Sprintf("Wind: %s at %s", w.Wind.Speed, w.Wind.Direction),
		common.Capitalize(w.Description) + ".",
		fmt.Sprintf("Sunrise: %s Sunset: %s", ReadableTime(p.Time.Sunrise), ReadableTime(p.Time.Sunset)),
	}
}
