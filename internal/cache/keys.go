package cache

import "fmt"

// HospitalsKey holds the full hospital listing with services.
const HospitalsKey = "catalog:hospitals"

// HospitalServicesKey holds the service listing of one hospital.
func HospitalServicesKey(hospitalID uint) string {
	return fmt.Sprintf("catalog:hospital:%d:services", hospitalID)
}
