package models

// ResourceKind distinguishes the two bookable catalog entries.
type ResourceKind string

const (
	KindService ResourceKind = "service" // photography service slot
	KindGear    ResourceKind = "gear"    // rentable equipment item
)

// RateUnit describes how a resource's unit price scales with the interval.
type RateUnit string

const (
	UnitDay   RateUnit = "day"   // priced per day, partial days rounded up
	UnitWeek  RateUnit = "week"  // priced per 7-day block
	UnitFixed RateUnit = "fixed" // flat price regardless of interval length
)

// Resource is a bookable catalog entry. The catalog service owns these
// documents; the booking engine only ever reads them.
type Resource struct {
	ID            string       `bson:"id" json:"id"`
	OwnerID       string       `bson:"owner_id" json:"owner_id"`
	Kind          ResourceKind `bson:"kind" json:"kind"`
	Title         string       `bson:"title" json:"title"`
	RateUnitPrice float64      `bson:"rate_unit_price" json:"rate_unit_price"`
	RateUnit      RateUnit     `bson:"rate_unit" json:"rate_unit"`
	MinUnits      int          `bson:"min_units" json:"min_units"`
	Currency      string       `bson:"currency" json:"currency"`
}
