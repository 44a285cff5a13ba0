// Package catalog declares the built-in Big 12 directory listings.
package catalog

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	"github.com/kailas-cloud/helix/internal/domain/record/field"
)

// Built-in listing kinds.
const (
	Schools         = "schools"
	Venues          = "venues"
	Contacts        = "contacts"
	TravelRoutes    = "travel_routes"
	WeatherStations = "weather_stations"
	Awards          = "awards"
)

func text(name string) field.Field    { return field.Reconstruct(name, field.Text) }
func facet(name string) field.Field   { return field.Reconstruct(name, field.Facet) }
func numeric(name string) field.Field { return field.Reconstruct(name, field.Numeric) }
func list(name string) field.Field    { return field.Reconstruct(name, field.List) }

// SchoolSchema lists member institutions.
func SchoolSchema() schema.Schema {
	return schema.MustNew(schema.Definition{
		Kind:  Schools,
		Title: "Member Schools",
		Fields: []field.Field{
			text("name"), text("mascot"), text("city"), facet("state"),
			numeric("joined"), numeric("enrollment"), list("sports"),
		},
		Search:   []string{"name", "mascot", "city", "state"},
		Facets:   []string{"state", "sports"},
		Sortable: []string{"name", "joined", "enrollment"},
	})
}

// VenueSchema lists competition venues.
func VenueSchema() schema.Schema {
	return schema.MustNew(schema.Definition{
		Kind:  Venues,
		Title: "Venues",
		Fields: []field.Field{
			text("name"), text("school"), text("city"), facet("state"),
			facet("sport"), numeric("capacity"),
		},
		Search:   []string{"name", "school", "city"},
		Facets:   []string{"sport", "state"},
		Sortable: []string{"name", "capacity"},
	})
}

// ContactSchema lists conference and campus contacts.
func ContactSchema() schema.Schema {
	return schema.MustNew(schema.Definition{
		Kind:  Contacts,
		Title: "Contacts",
		Fields: []field.Field{
			text("name"), text("title"), facet("department"), text("school"),
			text("email"), text("phone"),
		},
		Search:      []string{"name", "title", "school", "email"},
		Facets:      []string{"department"},
		Sortable:    []string{"name", "school"},
		DefaultSort: "name",
	})
}

// TravelRouteSchema lists planned team travel.
func TravelRouteSchema() schema.Schema {
	return schema.MustNew(schema.Definition{
		Kind:  TravelRoutes,
		Title: "Travel Routes",
		Fields: []field.Field{
			text("team"), facet("sport"), text("origin"), text("destination"),
			facet("mode"), facet("status"), numeric("distance_miles"),
		},
		Search:   []string{"team", "origin", "destination"},
		Facets:   []string{"sport", "mode", "status"},
		Sortable: []string{"team", "distance_miles"},
	})
}

// WeatherStationSchema lists the latest reading at each venue station.
func WeatherStationSchema() schema.Schema {
	return schema.MustNew(schema.Definition{
		Kind:  WeatherStations,
		Title: "Weather Stations",
		Fields: []field.Field{
			text("venue"), text("city"), facet("state"), facet("condition"),
			facet("alert_level"), numeric("temperature_f"), numeric("wind_mph"),
		},
		Search:   []string{"venue", "city"},
		Facets:   []string{"state", "condition", "alert_level"},
		Sortable: []string{"venue", "temperature_f", "wind_mph"},
	})
}

// AwardSchema lists the awards inventory.
func AwardSchema() schema.Schema {
	return schema.MustNew(schema.Definition{
		Kind:  Awards,
		Title: "Awards Inventory",
		Fields: []field.Field{
			text("name"), facet("category"), facet("sport"), facet("status"),
			numeric("quantity"), text("vendor"),
		},
		Search:   []string{"name", "vendor", "sport"},
		Facets:   []string{"category", "sport", "status"},
		Sortable: []string{"name", "quantity"},
	})
}

// Registry resolves listing kinds to schemas and keeps registration order.
type Registry struct {
	order  []string
	byKind map[string]schema.Schema
}

// NewRegistry creates a registry. Kinds must be unique.
func NewRegistry(schemas ...schema.Schema) (*Registry, error) {
	r := &Registry{byKind: make(map[string]schema.Schema, len(schemas))}
	for _, s := range schemas {
		if _, dup := r.byKind[s.Kind()]; dup {
			return nil, fmt.Errorf("duplicate listing kind %q", s.Kind())
		}
		r.byKind[s.Kind()] = s
		r.order = append(r.order, s.Kind())
	}
	return r, nil
}

// Default returns the registry of built-in listings.
func Default() *Registry {
	r, err := NewRegistry(
		SchoolSchema(),
		VenueSchema(),
		ContactSchema(),
		TravelRouteSchema(),
		WeatherStationSchema(),
		AwardSchema(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the schema for a kind.
func (r *Registry) Lookup(kind string) (schema.Schema, bool) {
	s, ok := r.byKind[kind]
	return s, ok
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []string { return slices.Clone(r.order) }

// Schemas returns the registered schemas in registration order.
func (r *Registry) Schemas() []schema.Schema {
	out := make([]schema.Schema, len(r.order))
	for i, k := range r.order {
		out[i] = r.byKind[k]
	}
	return out
}
