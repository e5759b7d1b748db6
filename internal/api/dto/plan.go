package dto

// PlanRequest overrides the configured planner settings for one run.
// Without rows the manifest repository is used.
type PlanRequest struct {
	TruckCapacity int        `json:"truck_capacity"`
	Layout        string     `json:"layout"`
	OriginMode    string     `json:"origin_mode"`
	Origin        string     `json:"origin"`
	OriginColumn  *int       `json:"origin_column"`
	Header        []string   `json:"header"`
	Rows          [][]string `json:"rows"`
}

type LoadLineResponse struct {
	Destination string `json:"destination"`
	Quantity    int    `json:"quantity"`
	GroupLabel  string `json:"group_label"`
}

type TruckResponse struct {
	SealID    string             `json:"seal_id"`
	Origin    string             `json:"origin"`
	Date      string             `json:"date"`
	Time      string             `json:"time"`
	Flight    string             `json:"flight"`
	Country   string             `json:"country"`
	Stops     []string           `json:"stops"`
	Load      []LoadLineResponse `json:"load"`
	Items     int                `json:"items"`
	Capacity  int                `json:"capacity"`
	MultiDrop bool               `json:"multi_drop"`
	CarPlate  string             `json:"car_plate"`
	Driver    string             `json:"driver"`
	Phone     string             `json:"phone"`
}

type SummaryResponse struct {
	TotalItems      int `json:"total_items"`
	TotalTrucks     int `json:"total_trucks"`
	MultiDropTrucks int `json:"multi_drop_trucks"`
	Flights         int `json:"flights"`
	SkippedRows     int `json:"skipped_rows"`
}

type GroupErrorResponse struct {
	Origin  string `json:"origin"`
	Country string `json:"country"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Flight  string `json:"flight"`
	Error   string `json:"error"`
}

type PlanResponse struct {
	Trucks      []TruckResponse      `json:"trucks"`
	Summary     SummaryResponse      `json:"summary"`
	GroupErrors []GroupErrorResponse `json:"group_errors"`
}
