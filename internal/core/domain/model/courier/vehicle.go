package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// VehicleType identifies what the courier rides or drives. It only affects
// profile data today; matching does not discriminate by vehicle.
type VehicleType int

const (
	// VehicleUnknown represents an invalid or undefined vehicle type.
	VehicleUnknown VehicleType = iota

	// Bicycle is a pedal or electric bicycle.
	Bicycle

	// Motorcycle is a motorcycle or scooter.
	Motorcycle

	// Car is a passenger car.
	Car

	// Van is a cargo van.
	Van
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleUnknown: "unknown",
		Bicycle:        "bicycle",
		Motorcycle:     "motorcycle",
		Car:            "car",
		Van:            "van",
	}
}

// VehicleTypeFromString parses the wire form of a vehicle type.
func VehicleTypeFromString(s string) (VehicleType, error) {
	for v, str := range getVehicleTypeStrings() {
		if str == s && v != VehicleUnknown {
			return v, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause("vehicleType",
		fmt.Errorf("%q is not a valid vehicle type", s))
}

// Validate checks the VehicleType is one of the defined kinds.
func (v VehicleType) Validate() error {
	if v == VehicleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType",
			fmt.Errorf("%d is not a valid vehicle type", v))
	}
	if _, ok := getVehicleTypeStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType",
			fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

// String returns the wire form of the vehicle type.
func (v VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[v]; ok {
		return str
	}
	return "unknown"
}
