package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"datachat/internal/llm"
	"datachat/internal/tools"
)

// ToolName is the name the tool is declared under to the model.
const ToolName = "get_weather"

// Tool adapts the OpenWeatherMap client to the tools.Tool capability interface.
type Tool struct {
	client *Client
}

// NewTool creates the weather lookup tool.
func NewTool(client *Client) *Tool {
	return &Tool{client: client}
}

// Describe implements tools.Tool.
func (t *Tool) Describe() llm.ToolDescriptor {
	return llm.ToolDescriptor{
		Name: ToolName,
		Description: "Get current weather information for a specific city. Returns temperature, " +
			"humidity, wind speed, and other weather conditions.",
		InputSchema: llm.InputSchema{
			Type: "object",
			Properties: map[string]llm.PropertySchema{
				"city": {Type: "string", Description: "Name of the city to get weather for"},
			},
			Required: []string{"city"},
		},
	}
}

// Execute implements tools.Tool.
// Input parameters: city (string).
func (t *Tool) Execute(ctx context.Context, input map[string]any) (string, error) {
	city, err := tools.StringParam(input, "city")
	if err != nil {
		return "", err
	}

	obs, err := t.client.Current(ctx, city)
	if err != nil {
		return "", err
	}

	return formatObservation(obs), nil
}

// formatObservation serializes the record into model-readable text.
func formatObservation(o *Observation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current weather in %s, %s:\n", o.City, o.Country)
	fmt.Fprintf(&b, "temperature=%.1fC feels_like=%.1fC\n", o.Temperature, o.FeelsLike)
	fmt.Fprintf(&b, "conditions=%s humidity=%d%% pressure=%dhPa\n", o.Description, o.Humidity, o.Pressure)
	fmt.Fprintf(&b, "wind_speed=%.1fm/s wind_direction=%d\n", o.WindSpeed, o.WindDirection)
	fmt.Fprintf(&b, "observed=%s\n", o.Timestamp.Format(time.RFC3339))
	return b.String()
}
