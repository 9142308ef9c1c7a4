package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/renjoshini/hereforyou/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl      *mongo.Collection
	professionalColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{
		bookingColl:      db.Collection("bookings"),
		professionalColl: db.Collection("professionals"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return repo.findOne(ctx, bson.M{"id": id})
}

// GetByReference retrieves a booking by its booking code or ID.
func (repo *MongoBookingRepo) GetByReference(ctx context.Context, ref string) (*models.Booking, error) {
	return repo.findOne(ctx, referenceFilter(ref))
}

func (repo *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctxWithTimeout, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	return &booking, nil
}

// FindActiveConflict returns the slot-holding booking occupying the same slot, if any.
func (repo *MongoBookingRepo) FindActiveConflict(ctx context.Context, professionalID string, date time.Time, start string) (*models.Booking, error) {
	booking, err := repo.findOne(ctx, conflictFilter(professionalID, date, start))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return booking, err
}

// UpdateProfessionalLocation replaces the last known professional location.
func (repo *MongoBookingRepo) UpdateProfessionalLocation(ctx context.Context, bookingID string, fix models.GeoFix) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"tracking.professionalLocation": fix,
		"updatedAt":                     fix.LastUpdated,
	}}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error updating location for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActualCost records the final bill and the commission derived from it.
func (repo *MongoBookingRepo) SetActualCost(ctx context.Context, bookingID string, actualCost float64, breakdown []models.CostItem, commission float64) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID, "status": bson.M{"$ne": models.StatusCancelled}}
	update := bson.M{"$set": bson.M{
		"pricing.actualCost": actualCost,
		"pricing.breakdown":  breakdown,
		"commission.amount":  commission,
		"updatedAt":          time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := repo.bookingColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStatusChanged
		}
		return nil, fmt.Errorf("error setting actual cost for booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// ListByCustomer returns a customer's bookings, newest first.
func (repo *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string, filter models.BookingListFilter) ([]models.Booking, int64, error) {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	return repo.list(ctx, bson.M{"customerId": customerID}, filter, sort)
}

// ListByProfessional returns a professional's bookings ordered by schedule date.
func (repo *MongoBookingRepo) ListByProfessional(ctx context.Context, professionalID string, filter models.BookingListFilter) ([]models.Booking, int64, error) {
	sort := bson.D{{Key: "schedule.date", Value: 1}, {Key: "createdAt", Value: -1}}
	return repo.list(ctx, bson.M{"professionalId": professionalID}, filter, sort)
}

func (repo *MongoBookingRepo) list(ctx context.Context, base bson.M, filter models.BookingListFilter, sort bson.D) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query, err := listFilter(base, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(skipFor(filter.Page, filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := repo.bookingColl.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding bookings: %w", err)
	}

	total, err := repo.bookingColl.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return bookings, total, nil
}

// ActiveScheduleDates returns the schedule date of every slot-holding booking in range.
func (repo *MongoBookingRepo) ActiveScheduleDates(ctx context.Context, professionalID string, from, to time.Time) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professionalId": professionalID,
		"schedule.date":  bson.M{"$gte": from, "$lte": to},
		"status":         slotHoldingFilter(),
	}
	opts := options.Find().SetProjection(bson.M{"schedule.date": 1})
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var dates []time.Time
	for cursor.Next(ctx) {
		var doc struct {
			Schedule struct {
				Date time.Time `bson:"date"`
			} `bson:"schedule"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding booking date: %w", err)
		}
		dates = append(dates, doc.Schedule.Date)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return dates, nil
}

// classifyWriteError maps duplicate-key violations on known indexes to
// repository errors. ok is false when err is something else.
func classifyWriteError(err error) (classified error, ok bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return nil, false
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, activeSlotIndexName):
		return ErrSlotTaken, true
	case strings.Contains(msg, codeIndexName):
		return ErrDuplicateCode, true
	}
	return nil, false
}
