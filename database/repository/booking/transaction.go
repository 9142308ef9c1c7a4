package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/renjoshini/hereforyou/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrProfessionalMissing is returned when the statistics update finds no professional.
var ErrProfessionalMissing = errors.New("professional not found")

// withTransaction runs fn inside a multi-document transaction. The driver
// reruns fn when the server labels a failure TransientTransactionError, so a
// create that lost a write conflict sees the winner on its next conflict read.
func (repo *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// writeFailure maps index violations to their sentinels and wraps anything
// else with %w so server error labels stay visible to the transaction retry.
func writeFailure(op string, err error) error {
	if classified, ok := classifyWriteError(err); ok {
		return classified
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func (repo *MongoBookingRepo) incrementStatistic(sc mongo.SessionContext, professionalID, field string) error {
	res, err := repo.professionalColl.UpdateOne(sc,
		bson.M{"id": professionalID},
		bson.M{"$inc": bson.M{"statistics." + field: 1}},
	)
	if err != nil {
		return fmt.Errorf("increment %s failed: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfessionalMissing
	}
	return nil
}

// CreateWithStatistics inserts the booking and bumps the professional's
// totalBookings atomically. The partial unique index backs up the conflict
// read against concurrent creates.
func (repo *MongoBookingRepo) CreateWithStatistics(ctx context.Context, booking *models.Booking) error {
	booking.HoldsSlot = booking.Status.HoldsSlot()

	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if booking.HoldsSlot {
			var existing models.Booking
			err := repo.bookingColl.FindOne(sc, conflictFilter(
				booking.ProfessionalID, booking.Schedule.Date, booking.Schedule.TimeSlot.Start,
			)).Decode(&existing)
			switch {
			case err == nil:
				return ErrSlotTaken
			case !errors.Is(err, mongo.ErrNoDocuments):
				return fmt.Errorf("conflict check failed: %w", err)
			}
		}

		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return writeFailure("insert booking", err)
		}
		return repo.incrementStatistic(sc, booking.ProfessionalID, "totalBookings")
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrDuplicateCode) || errors.Is(err, ErrProfessionalMissing) {
			return err
		}
		// The commit itself can surface the index violation.
		if classified, ok := classifyWriteError(err); ok {
			return classified
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// ApplyTransition moves the booking from status `from` to change.To. When the
// stored status is no longer `from` it returns ErrStatusChanged, or
// ErrNotFound when the booking does not exist.
func (repo *MongoBookingRepo) ApplyTransition(ctx context.Context, bookingID string, from models.BookingStatus, change TransitionChange) (*models.Booking, error) {
	var updated models.Booking
	now := change.Entry.Timestamp

	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"id": bookingID, "status": from}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		if err := repo.bookingColl.FindOneAndUpdate(sc, filter, transitionUpdate(change, now), opts).Decode(&updated); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrStatusChanged
			}
			return writeFailure("update booking status", err)
		}
		if change.CompletedBy != "" {
			return repo.incrementStatistic(sc, change.CompletedBy, "completedBookings")
		}
		return nil
	})
	if err == nil {
		return &updated, nil
	}

	if errors.Is(err, ErrStatusChanged) {
		if _, getErr := repo.GetByID(ctx, bookingID); errors.Is(getErr, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrStatusChanged
	}
	if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrProfessionalMissing) {
		return nil, err
	}
	if classified, ok := classifyWriteError(err); ok {
		return nil, classified
	}
	return nil, fmt.Errorf("status transition failed: %w", err)
}
