package searchbox

import (
	"time"

	"github.com/codr1/resort-booking/internal/models"
)

// Data seeds the search form from the current query.
type Data struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Adults      int
	Children    int
	Rooms       int
	// MinDate keeps the date pickers from offering past days.
	MinDate string
}

func NewData(criteria models.SearchCriteria, today time.Time) Data {
	return Data{
		Destination: criteria.Destination,
		CheckIn:     criteria.CheckInString(),
		CheckOut:    criteria.CheckOutString(),
		Adults:      criteria.Adults,
		Children:    criteria.Children,
		Rooms:       models.FixedRoomsCount,
		MinDate:     today.Format(models.DateLayout),
	}
}

func AdultOptions() []int {
	return countRange(models.MinAdults, models.MaxAdults)
}

func ChildOptions() []int {
	return countRange(models.MinChildren, models.MaxChildren)
}

func countRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}
