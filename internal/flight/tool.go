package flight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"datachat/internal/llm"
	"datachat/internal/tools"
)

// ToolName is the name the tool is declared under to the model.
const ToolName = "get_aircraft"

// Tool adapts the OpenSky client to the tools.Tool capability interface.
type Tool struct {
	client *Client
}

// NewTool creates the aircraft lookup tool.
func NewTool(client *Client) *Tool {
	return &Tool{client: client}
}

// Describe implements tools.Tool.
func (t *Tool) Describe() llm.ToolDescriptor {
	return llm.ToolDescriptor{
		Name: ToolName,
		Description: "Get real-time information about aircraft within a specified geographic " +
			"bounding box. Returns a list of aircraft with their positions, callsigns, and " +
			"other flight data.",
		InputSchema: llm.InputSchema{
			Type: "object",
			Properties: map[string]llm.PropertySchema{
				"min_lat": {Type: "number", Description: "Minimum latitude of bounding box"},
				"max_lat": {Type: "number", Description: "Maximum latitude of bounding box"},
				"min_lon": {Type: "number", Description: "Minimum longitude of bounding box"},
				"max_lon": {Type: "number", Description: "Maximum longitude of bounding box"},
			},
			Required: []string{"min_lat", "max_lat", "min_lon", "max_lon"},
		},
	}
}

// Execute implements tools.Tool.
// Input parameters: min_lat, max_lat, min_lon, max_lon (numbers, degrees).
func (t *Tool) Execute(ctx context.Context, input map[string]any) (string, error) {
	var box Box
	var err error

	if box.MinLat, err = tools.Float64Param(input, "min_lat"); err != nil {
		return "", err
	}
	if box.MaxLat, err = tools.Float64Param(input, "max_lat"); err != nil {
		return "", err
	}
	if box.MinLon, err = tools.Float64Param(input, "min_lon"); err != nil {
		return "", err
	}
	if box.MaxLon, err = tools.Float64Param(input, "max_lon"); err != nil {
		return "", err
	}

	aircraft, err := t.client.AircraftInBox(ctx, box)
	if err != nil {
		return "", err
	}

	return formatAircraft(aircraft), nil
}

// formatAircraft serializes the records into model-readable text.
func formatAircraft(aircraft []Aircraft) string {
	if len(aircraft) == 0 {
		return "No aircraft found in the specified region."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d aircraft found:\n", len(aircraft))
	for _, a := range aircraft {
		callsign := a.Callsign
		if callsign == "" {
			callsign = "unknown"
		}
		fmt.Fprintf(&b,
			"- icao24=%s callsign=%s country=%s latitude=%.4f longitude=%.4f altitude=%.0fm velocity=%.1fm/s heading=%.1f observed=%s\n",
			a.ICAO24, callsign, a.OriginCountry,
			a.Latitude, a.Longitude, a.Altitude, a.Velocity, a.Heading,
			a.Timestamp.Format(time.RFC3339),
		)
	}
	return b.String()
}
