package search

import (
	"net/url"
	"strconv"

	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/pricing"
	"github.com/codr1/resort-booking/internal/resortapi"
	resultfilter "github.com/codr1/resort-booking/internal/search"
	"github.com/codr1/resort-booking/internal/templates/components/searchbox"
)

const PlaceholderImage = "/static/img/room-placeholder.svg"

// Availability labels shown on a card.
const (
	AvailabilityUnknown   = ""
	AvailabilityAvailable = "available"
	AvailabilitySoldOut   = "sold_out"
)

type TypeOption struct {
	Name     string
	Selected bool
}

type Card struct {
	ID            string
	Name          string
	TypeName      string
	Location      string
	ImageURL      string
	Original      float64
	Price         float64
	Discount      float64
	HasDiscount   bool
	Availability  string
	RemainingRoom *int
	BookURL       string
}

type Group struct {
	TypeName string
	Cards    []Card
}

// ResultsData backs both the full results page and the htmx fragment.
type ResultsData struct {
	SearchBox searchbox.Data
	Criteria  models.SearchCriteria
	Types     []TypeOption
	Groups    []Group
	Count     int
}

// NewTypeOptions marks the selected names among the fetched types.
func NewTypeOptions(types []models.AccommodationType, selected []string) []TypeOption {
	chosen := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		chosen[name] = struct{}{}
	}
	options := make([]TypeOption, 0, len(types))
	for _, t := range types {
		if t.Name == "" {
			continue
		}
		_, ok := chosen[t.Name]
		options = append(options, TypeOption{Name: t.Name, Selected: ok})
	}
	return options
}

// NewGroups converts filter buckets into cards.
func NewGroups(groups []resultfilter.Group, criteria models.SearchCriteria, availability models.AvailabilityMap, uploadsBase string) ([]Group, int) {
	out := make([]Group, 0, len(groups))
	count := 0
	for _, g := range groups {
		cards := make([]Card, 0, len(g.Accommodations))
		for _, acc := range g.Accommodations {
			cards = append(cards, NewCard(acc, criteria, availability, uploadsBase))
		}
		count += len(cards)
		out = append(out, Group{TypeName: g.TypeName, Cards: cards})
	}
	return out, count
}

// NewCard prices acc for a single night.
func NewCard(acc models.Accommodation, criteria models.SearchCriteria, availability models.AvailabilityMap, uploadsBase string) Card {
	line := pricing.Breakdown(acc, 1)
	card := Card{
		ID:          acc.ID.String(),
		Name:        acc.Name,
		TypeName:    acc.TypeName(),
		Location:    location(acc),
		ImageURL:    imageURL(uploadsBase, acc.ImageName),
		Original:    line.Original,
		Price:       pricing.DiscountedPrice(acc),
		Discount:    line.Discount,
		HasDiscount: line.HasDiscount(),
		BookURL:     BookURL(acc.ID, criteria),
	}
	if status, ok := availability.Lookup(acc.ID); ok {
		card.Availability = AvailabilitySoldOut
		if status.Available {
			card.Availability = AvailabilityAvailable
		}
		card.RemainingRoom = status.Remaining
	}
	return card
}

// BookURL links a card to the booking view carrying the search values.
func BookURL(id models.ID, criteria models.SearchCriteria) string {
	query := url.Values{}
	query.Set("room", id.String())
	if criteria.Destination != "" {
		query.Set("destination", criteria.Destination)
	}
	if criteria.CheckIn != nil {
		query.Set("checkIn", criteria.CheckInString())
	}
	if criteria.CheckOut != nil {
		query.Set("checkOut", criteria.CheckOutString())
	}
	query.Set("adults", strconv.Itoa(criteria.Adults))
	query.Set("children", strconv.Itoa(criteria.Children))
	return "/booking?" + query.Encode()
}

func location(acc models.Accommodation) string {
	switch {
	case acc.City != "" && acc.Province != "":
		return acc.City + ", " + acc.Province
	case acc.City != "":
		return acc.City
	default:
		return acc.Province
	}
}

func imageURL(uploadsBase, imageName string) string {
	return resortapi.ImageURL(uploadsBase, imageName, PlaceholderImage)
}
