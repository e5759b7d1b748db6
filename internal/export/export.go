package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"transport-planner-service/internal/domain"
)

var truckHeader = []string{
	"seal_id", "origin", "date", "time", "flight", "country",
	"stops", "items", "multi_drop", "car_plate", "driver", "phone",
}

// TruckRecord is the flat export shape of one planned truck.
type TruckRecord struct {
	SealID    string   `json:"seal_id"`
	Origin    string   `json:"origin"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Flight    string   `json:"flight"`
	Country   string   `json:"country"`
	Stops     []string `json:"stops"`
	Items     int      `json:"items"`
	MultiDrop bool     `json:"multi_drop"`
	CarPlate  string   `json:"car_plate"`
	Driver    string   `json:"driver"`
	Phone     string   `json:"phone"`
}

// Records flattens the plan's trucks in plan order.
func Records(plan *domain.LoadPlan) []TruckRecord {
	out := make([]TruckRecord, 0, len(plan.Trucks))
	for _, t := range plan.Trucks {
		out = append(out, TruckRecord{
			SealID:    t.SealID,
			Origin:    t.Origin,
			Date:      t.Date,
			Time:      t.Time,
			Flight:    t.Flight,
			Country:   t.Country,
			Stops:     t.Stops,
			Items:     t.Items,
			MultiDrop: t.MultiDrop,
			CarPlate:  t.CarPlate,
			Driver:    t.Driver,
			Phone:     t.Phone,
		})
	}
	return out
}

// WriteJSON writes the truck records to w as a JSON array.
func WriteJSON(w io.Writer, plan *domain.LoadPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(plan))
}

// WriteCSV writes one row per truck. Stops use the sorted display form.
func WriteCSV(w io.Writer, plan *domain.LoadPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(truckHeader); err != nil {
		return err
	}
	for _, t := range plan.Trucks {
		rec := []string{
			t.SealID,
			t.Origin,
			t.Date,
			t.Time,
			t.Flight,
			t.Country,
			t.StopsDisplay,
			strconv.Itoa(t.Items),
			strconv.FormatBool(t.MultiDrop),
			t.CarPlate,
			t.Driver,
			t.Phone,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BagExportRow is a ledger row with the metadata of the truck carrying it.
// Truck is nil when no planned truck has the bag's seal id.
type BagExportRow struct {
	domain.BagRecord
	Truck *domain.PlannedTruck
}

// JoinBags matches bags to trucks by trimmed seal id, keeping ledger order.
func JoinBags(plan *domain.LoadPlan, bags []domain.BagRecord) []BagExportRow {
	bySeal := make(map[string]*domain.PlannedTruck, len(plan.Trucks))
	for i := range plan.Trucks {
		bySeal[strings.TrimSpace(plan.Trucks[i].SealID)] = &plan.Trucks[i]
	}

	out := make([]BagExportRow, 0, len(bags))
	for _, b := range bags {
		out = append(out, BagExportRow{
			BagRecord: b,
			Truck:     bySeal[strings.TrimSpace(b.SealID)],
		})
	}
	return out
}

// WriteBagsCSV writes the joined rows. Ledger attribute columns come after
// bag_id and seal_id in name order; truck columns follow.
func WriteBagsCSV(w io.Writer, rows []BagExportRow) error {
	attrSet := make(map[string]struct{})
	for _, r := range rows {
		for k := range r.Attributes {
			attrSet[k] = struct{}{}
		}
	}
	attrs := make([]string, 0, len(attrSet))
	for k := range attrSet {
		attrs = append(attrs, k)
	}
	slices.Sort(attrs)

	header := append([]string{"bag_id", "seal_id"}, attrs...)
	header = append(header, "origin", "date", "time", "flight", "country", "stops", "car_plate", "driver", "phone")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, r.BagID, r.SealID)
		for _, k := range attrs {
			rec = append(rec, r.Attributes[k])
		}
		if t := r.Truck; t != nil {
			rec = append(rec, t.Origin, t.Date, t.Time, t.Flight, t.Country, t.StopsDisplay, t.CarPlate, t.Driver, t.Phone)
		} else {
			rec = append(rec, make([]string, 9)...)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders the plan as an aligned text table followed by the
// summary, the multi-drop trucks and any failed groups.
func WriteTable(w io.Writer, plan *domain.LoadPlan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTIME\tFLIGHT\tORIGIN\tCOUNTRY\tSTOPS\tITEMS\tPLATE\tDRIVER\tPHONE")
	for _, t := range plan.Trucks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d/%d\t%s\t%s\t%s\n",
			t.Date, t.Time, t.Flight, t.Origin, t.Country, t.StopsDisplay,
			t.Items, t.Capacity, t.CarPlate, t.Driver, t.Phone)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := plan.Summary
	fmt.Fprintf(w, "\nitems=%d trucks=%d multi_drop=%d flights=%d skipped_rows=%d\n",
		s.TotalItems, s.TotalTrucks, s.MultiDropTrucks, s.Flights, s.SkippedRows)

	if s.MultiDropTrucks > 0 {
		fmt.Fprintln(w, "\nmulti-drop trucks:")
		for _, t := range plan.Trucks {
			if t.MultiDrop {
				fmt.Fprintf(w, "  %s: %s (%d)\n", t.Flight, t.StopsDisplay, t.Items)
			}
		}
	}

	if len(plan.GroupErrors) > 0 {
		fmt.Fprintln(w, "\nfailed groups:")
		for _, ge := range plan.GroupErrors {
			fmt.Fprintf(w, "  %s\n", ge.Error())
		}
	}
	return nil
}
