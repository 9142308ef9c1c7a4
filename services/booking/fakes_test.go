package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	bookingRepo "github.com/renjoshini/hereforyou/database/repository/booking"
	professionalRepo "github.com/renjoshini/hereforyou/database/repository/professional"
	userRepo "github.com/renjoshini/hereforyou/database/repository/user"
	"github.com/renjoshini/hereforyou/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	c.Timeline = append([]models.TimelineEntry(nil), b.Timeline...)
	if b.Cancellation != nil {
		cc := *b.Cancellation
		c.Cancellation = &cc
	}
	if b.Tracking.ProfessionalLocation != nil {
		fix := *b.Tracking.ProfessionalLocation
		c.Tracking.ProfessionalLocation = &fix
	}
	return &c
}

// fakeProfessionalRepo is an in-memory ProfessionalRepository.
type fakeProfessionalRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Professional
	err  error
}

func newFakeProfessionalRepo(pros ...*models.Professional) *fakeProfessionalRepo {
	r := &fakeProfessionalRepo{byID: map[string]*models.Professional{}}
	for _, p := range pros {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProfessionalRepo) GetByID(_ context.Context, id string) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, professionalRepo.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *fakeProfessionalRepo) GetByUserID(_ context.Context, userID string) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.UserID == userID {
			c := *p
			return &c, nil
		}
	}
	return nil, professionalRepo.ErrNotFound
}

func (r *fakeProfessionalRepo) Create(_ context.Context, p *models.Professional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProfessionalRepo) increment(id, field string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return bookingRepo.ErrProfessionalMissing
	}
	switch field {
	case "totalBookings":
		p.Statistics.TotalBookings++
	case "completedBookings":
		p.Statistics.CompletedBookings++
	}
	return nil
}

func (r *fakeProfessionalRepo) stats(id string) models.ProfessionalStatistics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id].Statistics
}

// fakeBookingRepo is an in-memory BookingRepository enforcing the same
// slot, code and conditional-update rules as the Mongo implementation.
type fakeBookingRepo struct {
	mu            sync.Mutex
	bookings      map[string]*models.Booking
	professionals *fakeProfessionalRepo
	// duplicateCodes makes the next N inserts fail with ErrDuplicateCode.
	duplicateCodes int
	// hideConflicts makes FindActiveConflict miss, as if a competing
	// booking committed after the lookup.
	hideConflicts bool
	// beforeTransition runs inside ApplyTransition before the status check.
	beforeTransition func(b *models.Booking)
}

func newFakeBookingRepo(pros *fakeProfessionalRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}, professionals: pros}
}

func (r *fakeBookingRepo) conflict(professionalID string, date time.Time, start string) *models.Booking {
	for _, b := range r.bookings {
		if b.ProfessionalID == professionalID && b.Schedule.Date.Equal(date) &&
			b.Schedule.TimeSlot.Start == start && b.Status.HoldsSlot() {
			return b
		}
	}
	return nil
}

func (r *fakeBookingRepo) CreateWithStatistics(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.duplicateCodes > 0 {
		r.duplicateCodes--
		return bookingRepo.ErrDuplicateCode
	}
	if b.Status.HoldsSlot() && r.conflict(b.ProfessionalID, b.Schedule.Date, b.Schedule.TimeSlot.Start) != nil {
		return bookingRepo.ErrSlotTaken
	}
	for _, existing := range r.bookings {
		if existing.BookingCode == b.BookingCode {
			return bookingRepo.ErrDuplicateCode
		}
	}
	if err := r.professionals.increment(b.ProfessionalID, "totalBookings"); err != nil {
		return err
	}
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) GetByReference(ctx context.Context, ref string) (*models.Booking, error) {
	r.mu.Lock()
	for _, b := range r.bookings {
		if b.BookingCode == ref {
			r.mu.Unlock()
			return cloneBooking(b), nil
		}
	}
	r.mu.Unlock()
	return r.GetByID(ctx, ref)
}

func (r *fakeBookingRepo) FindActiveConflict(_ context.Context, professionalID string, date time.Time, start string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hideConflicts {
		return nil, nil
	}
	if b := r.conflict(professionalID, date, start); b != nil {
		return cloneBooking(b), nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) ApplyTransition(_ context.Context, id string, from models.BookingStatus, change bookingRepo.TransitionChange) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if r.beforeTransition != nil {
		r.beforeTransition(b)
	}
	if b.Status != from {
		return nil, bookingRepo.ErrStatusChanged
	}
	b.Status = change.To
	if !change.To.HoldsSlot() {
		b.HoldsSlot = false
	}
	b.UpdatedAt = change.Entry.Timestamp
	b.Timeline = append(b.Timeline, change.Entry)
	if change.WorkStarted != nil {
		b.Tracking.WorkStarted = change.WorkStarted
	}
	if change.WorkCompleted != nil {
		b.Tracking.WorkCompleted = change.WorkCompleted
	}
	if change.Cancellation != nil {
		c := *change.Cancellation
		b.Cancellation = &c
	}
	if change.CompletedBy != "" {
		if err := r.professionals.increment(change.CompletedBy, "completedBookings"); err != nil {
			return nil, err
		}
	}
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) UpdateProfessionalLocation(_ context.Context, id string, fix models.GeoFix) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Tracking.ProfessionalLocation = &fix
	return nil
}

func (r *fakeBookingRepo) SetActualCost(_ context.Context, id string, actual float64, breakdown []models.CostItem, commission float64) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status == models.StatusCancelled {
		return nil, bookingRepo.ErrStatusChanged
	}
	b.Pricing.ActualCost = &actual
	b.Pricing.Breakdown = breakdown
	b.Commission.Amount = &commission
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) list(match func(*models.Booking) bool, filter models.BookingListFilter) ([]models.Booking, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Booking
	for _, b := range r.bookings {
		if !match(b) {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Day != "" && b.Schedule.Date.Format("2006-01-02") != filter.Day {
			continue
		}
		all = append(all, *cloneBooking(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		return []models.Booking{}, total
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total
}

func (r *fakeBookingRepo) ListByCustomer(_ context.Context, customerID string, filter models.BookingListFilter) ([]models.Booking, int64, error) {
	out, total := r.list(func(b *models.Booking) bool { return b.CustomerID == customerID }, filter)
	return out, total, nil
}

func (r *fakeBookingRepo) ListByProfessional(_ context.Context, professionalID string, filter models.BookingListFilter) ([]models.Booking, int64, error) {
	out, total := r.list(func(b *models.Booking) bool { return b.ProfessionalID == professionalID }, filter)
	return out, total, nil
}

func (r *fakeBookingRepo) ActiveScheduleDates(_ context.Context, professionalID string, from, to time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var dates []time.Time
	for _, b := range r.bookings {
		d := b.Schedule.Date
		if b.ProfessionalID == professionalID && b.Status.HoldsSlot() && !d.Before(from) && !d.After(to) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return r.GetByID(id)
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) SetTokenHash(id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.TokenHash = hash
	return nil
}

func (r *fakeUserRepo) SetFCMToken(id, token string) error {
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.FCMToken = token
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg models.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

func (n *recordingNotifier) byType(t string) []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.Notification
	for _, msg := range n.sent {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}

type publishedEvent struct {
	key     string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: key, payload: v})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.key)
	}
	return out
}

type memoryCache struct {
	mu          sync.Mutex
	entries     map[string]*models.AvailabilityCalendar
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*models.AvailabilityCalendar{}}
}

func (c *memoryCache) Get(_ context.Context, id string) (*models.AvailabilityCalendar, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cal, ok := c.entries[id]
	return cal, ok
}

func (c *memoryCache) Set(_ context.Context, cal *models.AvailabilityCalendar, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cal.ProfessionalID] = cal
}

func (c *memoryCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

// fixture bundles a service wired to fakes with one customer and one
// active professional.
type fixture struct {
	svc       *DefaultBookingService
	bookings  *fakeBookingRepo
	pros      *fakeProfessionalRepo
	users     *fakeUserRepo
	notifier  *recordingNotifier
	publisher *recordingPublisher
	cache     *memoryCache
	now       time.Time
}

const (
	customerID     = "user-customer"
	otherUserID    = "user-other"
	proUserID      = "user-pro"
	otherProUserID = "user-pro-2"
	professionalID = "pro-1"
	otherProID     = "pro-2"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	pros := newFakeProfessionalRepo(
		&models.Professional{
			ID:           professionalID,
			UserID:       proUserID,
			Pricing:      models.ProfessionalPricing{HourlyRate: 500, Currency: "INR"},
			Availability: models.ProfessionalSchedule{IsAvailable: true},
			IsActive:     true,
		},
		&models.Professional{
			ID:           otherProID,
			UserID:       otherProUserID,
			Pricing:      models.ProfessionalPricing{HourlyRate: 300},
			Availability: models.ProfessionalSchedule{IsAvailable: true},
			IsActive:     true,
		},
	)
	users := newFakeUserRepo(
		&models.User{ID: customerID, Name: "Asha", Phone: "9876543210", Email: "asha@example.com"},
		&models.User{ID: otherUserID, Name: "Ravi", Phone: "9123456780"},
		&models.User{ID: proUserID, Name: "Pro Plumber", Phone: "9000000001", FCMToken: "device-token"},
		&models.User{ID: otherProUserID, Name: "Other Pro", Phone: "9000000002"},
	)
	f := &fixture{
		bookings:  newFakeBookingRepo(pros),
		pros:      pros,
		users:     users,
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		cache:     newMemoryCache(),
		now:       testNow,
	}

	policy := DefaultPolicy()
	policy.Location = time.UTC
	f.svc = NewBookingService(f.bookings, pros, users, f.notifier, f.publisher, f.cache, policy)
	f.svc.Logger = zap.NewNop()
	f.svc.Now = func() time.Time { return f.now }
	return f
}

func validInput() models.CreateBookingInput {
	return models.CreateBookingInput{
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		Service:        models.ServicePlumbing,
		ServiceDetails: models.ServiceDetails{Description: "Leaking tap"},
		Schedule: models.ScheduleInput{
			Date:     "2025-03-10",
			TimeSlot: models.TimeSlot{Start: "11:00", End: "12:00"},
		},
		Location: models.BookingLocation{Address: "12 MG Road", City: "Bangalore", Pincode: "560001"},
		Contact:  models.Contact{Name: "Asha", Phone: "9876543210"},
		Payment:  models.PaymentInput{Method: models.PaymentUPI},
	}
}

func (f *fixture) create(t *testing.T, mutate ...func(*models.CreateBookingInput)) *models.Booking {
	t.Helper()
	input := validInput()
	for _, m := range mutate {
		m(&input)
	}
	b, err := f.svc.CreateBooking(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	return b
}

func (f *fixture) stored(t *testing.T, id string) *models.Booking {
	t.Helper()
	b, err := f.bookings.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID(%s): %v", id, err)
	}
	return b
}

func assertCode(t *testing.T, err error, want *BookingError) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want.Code)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected %s error, got %v", want.Code, err)
	}
}
