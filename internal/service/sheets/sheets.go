package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"MedPet/entity"
	"MedPet/internal/lib/sl"
)

// Recorder appends completed appointments as rows to the bookings
// spreadsheet. Rows are append-only; nothing here reads the sheet back.
type Recorder struct {
	service       *sheets.Service
	spreadsheetID string
	writeRange    string
	log           *slog.Logger
}

func NewRecorder(ctx context.Context, credentialsFile, spreadsheetID, writeRange string, log *slog.Logger) (*Recorder, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Recorder{
		service:       service,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
		log:           log.With(sl.Module("sheets")),
	}, nil
}

// Record appends one appointment row.
func (r *Recorder) Record(ctx context.Context, appointment entity.Appointment) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{appointment.Row()},
	}

	_, err := r.service.Spreadsheets.Values.
		Append(r.spreadsheetID, r.writeRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending appointment row: %w", err)
	}

	r.log.Info("appointment recorded",
		slog.String("uuid", appointment.UUID),
		slog.String("conversation_id", appointment.ConversationID),
	)
	return nil
}
