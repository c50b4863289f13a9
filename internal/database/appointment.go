package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"MedPet/entity"
)

// SaveAppointment archives a completed appointment request.
func (m *MongoDB) SaveAppointment(ctx context.Context, appointment entity.Appointment) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)

	_, err = collection.InsertOne(ctx, appointment)
	if err != nil {
		return fmt.Errorf("mongodb insert appointment: %w", err)
	}

	return nil
}

// GetAppointments returns archived appointments, newest first.
func (m *MongoDB) GetAppointments(ctx context.Context, limit, offset int) ([]entity.Appointment, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)

	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []entity.Appointment
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("mongodb decode appointments: %w", err)
	}

	return appointments, nil
}
