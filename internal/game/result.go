package game

import (
	"time"

	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
	"github.com/louisbranch/foodops/internal/storage"
)

// Losses breaks down the covers a restaurant could not serve this turn.
type Losses struct {
	// Total is Capacity + Stock + Other.
	Total int
	// Capacity counts covers turned away because the venue was full.
	Capacity int
	// Stock counts covers lost to missing finished portions.
	Stock int
	// Other counts covers lost to exhausted service minutes.
	Other int
}

// TurnResult is one restaurant's month, fully resolved and immutable.
type TurnResult struct {
	Turn           int
	RestaurantID   string
	RestaurantName string

	Allocated int
	Served    int
	Capacity  int

	MedianPrice  float64
	Revenue      float64
	COGS         float64
	FixedCosts   float64
	Marketing    float64
	Payroll      float64
	Depreciation float64
	Interest     float64
	Principal    float64

	FundsStart      float64
	FundsEnd        float64
	StockValueStart float64
	StockValueEnd   float64

	// Notoriety and Satisfaction are the post-update values that feed the
	// next turn.
	Notoriety    float64
	Satisfaction float64

	Losses Losses

	// Bankrupt flags negative closing funds. Whether the restaurant keeps
	// trading afterwards is the host's call.
	Bankrupt bool
}

// Record converts the result into its persisted form.
func (r TurnResult) Record(gameID string, at time.Time) storage.TurnResultRecord {
	return storage.TurnResultRecord{
		GameID:          gameID,
		Turn:            r.Turn,
		RestaurantID:    r.RestaurantID,
		RestaurantName:  r.RestaurantName,
		Allocated:       r.Allocated,
		Served:          r.Served,
		Capacity:        r.Capacity,
		MedianPrice:     r.MedianPrice,
		Revenue:         r.Revenue,
		COGS:            r.COGS,
		FixedCosts:      r.FixedCosts,
		Marketing:       r.Marketing,
		Payroll:         r.Payroll,
		Depreciation:    r.Depreciation,
		Interest:        r.Interest,
		Principal:       r.Principal,
		FundsStart:      r.FundsStart,
		FundsEnd:        r.FundsEnd,
		StockValueStart: r.StockValueStart,
		StockValueEnd:   r.StockValueEnd,
		Notoriety:       r.Notoriety,
		Satisfaction:    r.Satisfaction,
		LostTotal:       r.Losses.Total,
		LostCapacity:    r.Losses.Capacity,
		LostStock:       r.Losses.Stock,
		LostOther:       r.Losses.Other,
		Bankrupt:        r.Bankrupt,
		CreatedAt:       at.UTC(),
	}
}

// LoanBalance is one outstanding loan in a snapshot.
type LoanBalance struct {
	Name        string
	Outstanding float64
}

// Snapshot is the director-facing view of one restaurant between turns.
type Snapshot struct {
	RestaurantID string
	Name         string
	Concept      restaurant.Concept
	Active       bool

	Funds        float64
	Notoriety    float64
	Satisfaction float64

	Minutes          staffing.MinuteBank
	MedianPrice      float64
	Capacity         int
	StockValue       float64
	FinishedPortions int

	Loans []LoanBalance
}
