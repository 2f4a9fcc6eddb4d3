// Package hotels holds the static catalog of supported destinations and
// the alias table mapping destination strings to pre-registered hotels.
package hotels

import "strings"

// Hotel is one pre-registered property with its upstream identifier.
type Hotel struct {
	ID          string   // property identifier in the partner pricing API
	Name        string   // canonical hotel name
	Destination string   // destination code the property belongs to
	Aliases     []string // accepted short names, matched case-insensitively
}

// Destination is one supported destination for the /api/destinations list.
type Destination struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

var catalog = []Hotel{
	{
		ID:          "91258374",
		Name:        "Secrets Puerto Los Cabos",
		Destination: "CSL",
		Aliases:     []string{"secrets los cabos", "puerto los cabos"},
	},
	{
		ID:          "91258375",
		Name:        "Dreams Riviera Cancun",
		Destination: "CUN",
		Aliases:     []string{"dreams cancun", "riviera cancun"},
	},
	{
		ID:          "91258376",
		Name:        "Breathless Punta Cana",
		Destination: "PUJ",
		Aliases:     []string{"breathless punta cana resort"},
	},
	{
		ID:          "91258377",
		Name:        "Secrets Vallarta Bay",
		Destination: "PVR",
		Aliases:     []string{"vallarta bay"},
	},
	{
		ID:          "91258378",
		Name:        "Sunscape Sabor Cozumel",
		Destination: "CZM",
		Aliases:     []string{"sunscape cozumel"},
	},
}

var destinations = []Destination{
	{Code: "CUN", Name: "Cancún", Country: "Mexico"},
	{Code: "PUJ", Name: "Punta Cana", Country: "Dominican Republic"},
	{Code: "CZM", Name: "Cozumel", Country: "Mexico"},
	{Code: "PVR", Name: "Puerto Vallarta", Country: "Mexico"},
	{Code: "CSL", Name: "Cabo San Lucas", Country: "Mexico"},
}

// Resolve matches a destination string against the alias table.
// Matching is case-insensitive against exact hotel names and aliases.
func Resolve(destination string) (Hotel, bool) {
	needle := strings.ToLower(strings.TrimSpace(destination))
	if needle == "" {
		return Hotel{}, false
	}

	for _, h := range catalog {
		if strings.ToLower(h.Name) == needle {
			return h, true
		}
		for _, alias := range h.Aliases {
			if strings.ToLower(alias) == needle {
				return h, true
			}
		}
	}
	return Hotel{}, false
}

// Destinations returns the supported destination list.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// Catalog returns a copy of the registered hotels.
func Catalog() []Hotel {
	out := make([]Hotel, len(catalog))
	copy(out, catalog)
	return out
}
