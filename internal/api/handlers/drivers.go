package handlers

import (
	"net/http"
	"transport-planner-service/internal/api/dto"
	"transport-planner-service/internal/ports"

	"github.com/rs/zerolog"
)

// DriverHandler exposes the driver roster read-only.
type DriverHandler struct {
	Roster ports.DriverRoster
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	drivers, err := h.Roster.ListDrivers(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list drivers failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDriversResponse{
		Drivers: make([]dto.DriverResponse, 0, len(drivers)),
	}
	for _, d := range drivers {
		res.Drivers = append(res.Drivers, dto.DriverResponse{
			LicensePlate: d.LicensePlate,
			Name:         d.Name,
			Phone:        d.Phone,
			Station:      d.Station,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
