package recorder

import (
	"context"

	"MedPet/entity"
)

// AppointmentArchive is the persistence side of appointment recording.
type AppointmentArchive interface {
	SaveAppointment(ctx context.Context, appointment entity.Appointment) error
}

// MongoArchive records completed appointments into the database archive.
type MongoArchive struct {
	archive AppointmentArchive
}

func NewMongoArchive(archive AppointmentArchive) *MongoArchive {
	return &MongoArchive{archive: archive}
}

func (r *MongoArchive) Record(ctx context.Context, appointment entity.Appointment) error {
	return r.archive.SaveAppointment(ctx, appointment)
}

// AdminNotifier pushes a human-readable appointment summary somewhere an
// operator will see it.
type AdminNotifier interface {
	NotifyAppointment(appointment entity.Appointment)
}

// TelegramNotify records appointments by notifying the admin chat. Delivery
// is best effort; the notifier logs its own failures.
type TelegramNotify struct {
	notifier AdminNotifier
}

func NewTelegramNotify(notifier AdminNotifier) *TelegramNotify {
	return &TelegramNotify{notifier: notifier}
}

func (r *TelegramNotify) Record(_ context.Context, appointment entity.Appointment) error {
	r.notifier.NotifyAppointment(appointment)
	return nil
}

// AppointmentBroadcaster fans an appointment out to connected operator
// consoles.
type AppointmentBroadcaster interface {
	BroadcastAppointment(appointment entity.Appointment)
}

// ConsoleBroadcast records appointments by pushing them onto the live
// operator feed.
type ConsoleBroadcast struct {
	broadcaster AppointmentBroadcaster
}

func NewConsoleBroadcast(broadcaster AppointmentBroadcaster) *ConsoleBroadcast {
	return &ConsoleBroadcast{broadcaster: broadcaster}
}

func (r *ConsoleBroadcast) Record(_ context.Context, appointment entity.Appointment) error {
	r.broadcaster.BroadcastAppointment(appointment)
	return nil
}
