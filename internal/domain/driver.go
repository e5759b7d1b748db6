package domain

import "strings"

// Station key of the catch-all driver pool.
const AnyStation = "ANY"

// Roster entry supplied by the driver source.
type Driver struct {
	LicensePlate string
	Name         string
	Phone        string
	Station      string
}

// NormalizeStation uppercases and trims a station key, defaulting to AnyStation.
func NormalizeStation(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return AnyStation
	}
	return s
}

// Driver and vehicle handed to one truck.
type DriverAssignment struct {
	CarPlate string
	Driver   string
	Phone    string
}

// NoDriver is assigned when neither the station pool nor the ANY pool has drivers.
var NoDriver = DriverAssignment{CarPlate: "No Driver", Driver: "-", Phone: "-"}

// Assignment returns the driver as a truck assignment.
func (d Driver) Assignment() DriverAssignment {
	return DriverAssignment{CarPlate: d.LicensePlate, Driver: d.Name, Phone: d.Phone}
}
