// models/service_type.go
package models

// ServiceCategory is one of the fixed service types a booking can be made for.
type ServiceCategory string

const (
	ServicePlumbing        ServiceCategory = "plumbing"
	ServiceElectrical      ServiceCategory = "electrical"
	ServiceACRepair        ServiceCategory = "ac-repair"
	ServiceApplianceRepair ServiceCategory = "appliance-repair"
	ServiceHouseCleaning   ServiceCategory = "house-cleaning"
	ServiceCarRepair       ServiceCategory = "car-repair"
	ServiceGardening       ServiceCategory = "gardening"
	ServicePestControl     ServiceCategory = "pest-control"
	ServiceCaretaker       ServiceCategory = "caretaker"
	ServiceCook            ServiceCategory = "cook"
	ServiceMaid            ServiceCategory = "maid"
	ServiceLaundry         ServiceCategory = "laundry"
	ServiceHealthcare      ServiceCategory = "healthcare"
	ServiceBabysitting     ServiceCategory = "babysitting"
	ServiceTailoring       ServiceCategory = "tailoring"
	ServiceOther           ServiceCategory = "other"
)

// ServiceCategories is the closed set of bookable services.
var ServiceCategories = []ServiceCategory{
	ServicePlumbing, ServiceElectrical, ServiceACRepair, ServiceApplianceRepair,
	ServiceHouseCleaning, ServiceCarRepair, ServiceGardening, ServicePestControl,
	ServiceCaretaker, ServiceCook, ServiceMaid, ServiceLaundry,
	ServiceHealthcare, ServiceBabysitting, ServiceTailoring, ServiceOther,
}

// Valid reports whether c belongs to ServiceCategories.
func (c ServiceCategory) Valid() bool {
	for _, known := range ServiceCategories {
		if c == known {
			return true
		}
	}
	return false
}
