package appointments

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"MedPet/entity"
	"MedPet/internal/lib/api/response"
	"MedPet/internal/lib/sl"
)

type Core interface {
	GetAppointments(ctx context.Context, limit, offset int) ([]entity.Appointment, error)
}

type listResponse struct {
	response.Response
	Appointments []entity.Appointment `json:"appointments"`
}

// List returns archived appointments, newest first. Supports limit/offset
// query parameters; limit defaults to 50.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.appointments")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("appointment archive not available")
			render.JSON(w, r, response.Error("Appointment archive not available"))
			return
		}

		limit := queryInt(r, "limit", 50)
		offset := queryInt(r, "offset", 0)

		appointments, err := handler.GetAppointments(r.Context(), limit, offset)
		if err != nil {
			logger.Error("listing appointments", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list appointments"))
			return
		}

		render.JSON(w, r, listResponse{
			Response:     response.OK(),
			Appointments: appointments,
		})
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
