package dto

type DriverResponse struct {
	LicensePlate string `json:"license_plate"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Station      string `json:"station"`
}

type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}
