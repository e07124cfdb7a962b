// internal/models/accommodation.go
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// OtherTypeName buckets accommodations that carry no type.
const OtherTypeName = "Other"

// ID accepts both numeric and string identifiers from the resort API.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type AccommodationType struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
}

type Promotion struct {
	Discount Percent `json:"discount"`
}

// Accommodation is a bookable room or villa as returned by the resort API.
// The client never mutates it.
type Accommodation struct {
	ID            ID                 `json:"id"`
	Name          string             `json:"name"`
	Type          *AccommodationType `json:"type,omitempty"`
	PricePerNight float64            `json:"price_per_night"`
	Discount      Percent            `json:"discount"`
	Promotions    *Promotion         `json:"promotions,omitempty"`
	ImageName     string             `json:"image_name,omitempty"`
	City          string             `json:"city,omitempty"`
	Province      string             `json:"province,omitempty"`
}

// TypeName returns the type name or "" when the record has no type.
func (a Accommodation) TypeName() string {
	if a.Type == nil {
		return ""
	}
	return a.Type.Name
}

// EffectiveDiscount returns the discount percent in [0,100]. The top-level
// discount wins; promotions.discount is the fallback; anything missing or
// non-numeric counts as 0.
func (a Accommodation) EffectiveDiscount() float64 {
	if a.Discount.Valid {
		return a.Discount.Clamped()
	}
	if a.Promotions != nil && a.Promotions.Discount.Valid {
		return a.Promotions.Discount.Clamped()
	}
	return 0
}

// Percent is an optional discount percentage. Only JSON numbers are
// accepted; strings, null, missing or anything else leave it invalid.
type Percent struct {
	Value float64
	Valid bool
}

// NewPercent returns a valid percentage.
func NewPercent(value float64) Percent {
	return Percent{Value: value, Valid: true}
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	*p = Percent{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		return nil
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	*p = NewPercent(value)
	return nil
}

func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// Clamped bounds the percentage to [0,100]; invalid values are 0.
func (p Percent) Clamped() float64 {
	switch {
	case !p.Valid || p.Value < 0:
		return 0
	case p.Value > 100:
		return 100
	}
	return p.Value
}
