package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

type cityWeather struct {
	Temp      int
	Condition string
	Humidity  int
}

// Mock weather data. A production deployment would back these tools with a
// real weather API.
var mockWeather = map[string]cityWeather{
	"new york": {Temp: 72, Condition: "Sunny", Humidity: 45},
	"london":   {Temp: 55, Condition: "Cloudy", Humidity: 78},
	"tokyo":    {Temp: 65, Condition: "Rainy", Humidity: 82},
	"paris":    {Temp: 60, Condition: "Partly Cloudy", Humidity: 65},
	"sydney":   {Temp: 78, Condition: "Sunny", Humidity: 55},
	"bogota":   {Temp: 58, Condition: "Cloudy", Humidity: 72},
}

// RegisterWeatherTools installs the weather tools onto the catalog.
func RegisterWeatherTools(catalog *Catalog) {
	catalog.Register(mcp.NewTool(
		"get_weather",
		mcp.WithDescription("Get the current weather for a city"),
		mcp.WithString("city", mcp.Description("The name of the city"), mcp.Required()),
	), handleGetWeather)

	catalog.Register(mcp.NewTool(
		"get_forecast",
		mcp.WithDescription("Get a weather forecast for a city"),
		mcp.WithString("city", mcp.Description("The name of the city"), mcp.Required()),
		mcp.WithNumber("days", mcp.Description("Number of days to forecast (1-7)")),
	), handleGetForecast)
}

func handleGetWeather(ctx context.Context, args map[string]any) (string, error) {
	city, _ := args["city"].(string)
	data, ok := mockWeather[strings.ToLower(city)]

	if !ok {
		return fmt.Sprintf(
			"Weather data not available for %s. Try: New York, London, Tokyo, Paris, Sydney, or Bogota.",
			city,
		), nil
	}

	return fmt.Sprintf(
		"Weather in %s:\n- Temperature: %d°F\n- Condition: %s\n- Humidity: %d%%",
		city, data.Temp, data.Condition, data.Humidity,
	), nil
}

func handleGetForecast(ctx context.Context, args map[string]any) (string, error) {
	city, _ := args["city"].(string)
	data, ok := mockWeather[strings.ToLower(city)]

	if !ok {
		return fmt.Sprintf("Forecast not available for %s.", city), nil
	}

	days := 3
	if d, ok := args["days"].(float64); ok && d != 0 {
		days = int(d)
	}
	if days < 1 {
		days = 1
	}
	if days > 7 {
		days = 7
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d-day forecast for %s:", days, city)

	for i := range days {
		tempVariation := (i%3 - 1) * 5
		fmt.Fprintf(&sb, "\n- Day %d: %d°F, %s", i+1, data.Temp+tempVariation, data.Condition)
	}

	return sb.String(), nil
}
