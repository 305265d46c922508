// Package trip holds the trip-planning form data: the fixed city table and
// the query assembled from the form at submission time.
package trip

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// City is one selectable destination.
type City struct {
	Value string // wire value sent to the query endpoint
	Label string // display label
}

var cities = []City{
	{Value: "new york", Label: "New York"},
	{Value: "los angeles", Label: "Los Angeles"},
	{Value: "chicago", Label: "Chicago"},
	{Value: "san francisco", Label: "San Francisco"},
	{Value: "miami", Label: "Miami"},
	{Value: "paris", Label: "Paris"},
	{Value: "tokyo", Label: "Tokyo"},
	{Value: "sydney", Label: "Sydney"},
	{Value: "dubai", Label: "Dubai"},
	{Value: "london", Label: "London"},
}

// Cities returns a copy of the city table in display order.
func Cities() []City {
	return append([]City(nil), cities...)
}

// Labels returns the display labels in table order.
func Labels() []string {
	return lo.Map(cities, func(c City, _ int) string {
		return c.Label
	})
}

// Lookup finds a city by its wire value.
func Lookup(value string) (City, bool) {
	return lo.Find(cities, func(c City) bool {
		return c.Value == value
	})
}

// Search returns the cities whose label or value contains term,
// ignoring case. An empty term matches every city.
func Search(term string) []City {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return Cities()
	}
	return lo.Filter(cities, func(c City, _ int) bool {
		return strings.Contains(strings.ToLower(c.Label), term) ||
			strings.Contains(c.Value, term)
	})
}

// Selection is a chosen city or nothing.
type Selection struct {
	city *City
}

// Select returns a selection holding c.
func Select(c City) Selection {
	return Selection{city: &c}
}

// IsSet reports whether a city is selected.
func (s Selection) IsSet() bool {
	return s.city != nil
}

// City returns the selected city.
func (s Selection) City() (City, bool) {
	if s.city == nil {
		return City{}, false
	}
	return *s.city, true
}

// Value returns the wire value, or "" when unset.
func (s Selection) Value() string {
	if s.city == nil {
		return ""
	}
	return s.city.Value
}

// Label returns the display label, or "" when unset.
func (s Selection) Label() string {
	if s.city == nil {
		return ""
	}
	return s.city.Label
}

// Query is the trip-planning request built from the form.
type Query struct {
	Departure Selection
	Arrival   Selection
	CheckIn   string
	CheckOut  string
}

// Params encodes the query for the endpoint. Every key is always present;
// unset cities and empty dates are sent as empty strings.
func (q Query) Params() url.Values {
	v := url.Values{}
	v.Set("departure", q.Departure.Value())
	v.Set("arrival", q.Arrival.Value())
	v.Set("check_in", q.CheckIn)
	v.Set("check_out", q.CheckOut)
	return v
}
