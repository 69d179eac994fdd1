package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"eventbooking/internal/domain"
)

type mockUserRepository struct {
	users  map[int64]*domain.User
	nextID int64
	err    error
}

func newMockUserRepository(users ...*domain.User) *mockUserRepository {
	m := &mockUserRepository{users: map[int64]*domain.User{}, nextID: 1}
	for _, u := range users {
		m.users[u.ID] = u
		if u.ID >= m.nextID {
			m.nextID = u.ID + 1
		}
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type mockEventRepository struct {
	events map[string]*domain.Event
	nextID int
	err    error
}

func newMockEventRepository(events ...*domain.Event) *mockEventRepository {
	m := &mockEventRepository{events: map[string]*domain.Event{}, nextID: 1}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	e.ID = "event-" + strconv.Itoa(m.nextID)
	m.nextID++
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	events := make([]*domain.Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	return events, nil
}

func (m *mockEventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate, updatedAt time.Time) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = upd.Description
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	if upd.Location != nil {
		e.Location = upd.Location
	}
	e.UpdatedAt = updatedAt
	return e, nil
}

func (m *mockEventRepository) UpdateImages(ctx context.Context, id string, images []string, updatedAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	e, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Images = images
	e.UpdatedAt = updatedAt
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

type mockAttendeeRepository struct {
	pairs     map[string]bool
	attendees map[string][]*domain.User
	err       error
}

func newMockAttendeeRepository() *mockAttendeeRepository {
	return &mockAttendeeRepository{
		pairs:     map[string]bool{},
		attendees: map[string][]*domain.User{},
	}
}

func pairKey(eventID string, userID int64) string {
	return eventID + ":" + strconv.FormatInt(userID, 10)
}

func (m *mockAttendeeRepository) Add(ctx context.Context, eventID string, userID int64) error {
	if m.err != nil {
		return m.err
	}
	key := pairKey(eventID, userID)
	if m.pairs[key] {
		return domain.ErrAlreadyRegistered
	}
	m.pairs[key] = true
	m.attendees[eventID] = append(m.attendees[eventID], &domain.User{ID: userID})
	return nil
}

func (m *mockAttendeeRepository) Remove(ctx context.Context, eventID string, userID int64) error {
	if m.err != nil {
		return m.err
	}
	key := pairKey(eventID, userID)
	if !m.pairs[key] {
		return domain.ErrNotRegistered
	}
	delete(m.pairs, key)
	kept := m.attendees[eventID][:0]
	for _, u := range m.attendees[eventID] {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	m.attendees[eventID] = kept
	return nil
}

func (m *mockAttendeeRepository) Exists(ctx context.Context, eventID string, userID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.pairs[pairKey(eventID, userID)], nil
}

func (m *mockAttendeeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.attendees[eventID], nil
}

type mockBookingRepository struct {
	bookings map[int64]*domain.Booking
	users    map[int64]*domain.User
	events   map[string]*domain.Event
	nextID   int64
	err      error
}

func newMockBookingRepository(users []*domain.User, events []*domain.Event, bookings ...*domain.Booking) *mockBookingRepository {
	m := &mockBookingRepository{
		bookings: map[int64]*domain.Booking{},
		users:    map[int64]*domain.User{},
		events:   map[string]*domain.Event{},
		nextID:   1,
	}
	for _, u := range users {
		m.users[u.ID] = u
	}
	for _, e := range events {
		m.events[e.ID] = e
	}
	for _, b := range bookings {
		m.bookings[b.ID] = b
		if b.ID >= m.nextID {
			m.nextID = b.ID + 1
		}
	}
	return m
}

func (m *mockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.bookings {
		if existing.UserID == b.UserID && existing.EventID == b.EventID {
			return domain.ErrDuplicateBooking
		}
	}
	b.ID = m.nextID
	m.nextID++
	m.bookings[b.ID] = b
	return nil
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (m *mockBookingRepository) GetByUserAndEvent(ctx context.Context, userID int64, eventID string) (*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, b := range m.bookings {
		if b.UserID == userID && b.EventID == eventID {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockBookingRepository) GetDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.BookingDetails{
		Booking: b,
		User:    m.users[b.UserID],
		Event:   m.events[b.EventID],
	}, nil
}

func (m *mockBookingRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.BookingWithEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.BookingWithEvent, 0)
	for _, b := range m.bookings {
		if b.UserID == userID {
			result = append(result, &domain.BookingWithEvent{Booking: b, Event: m.events[b.EventID]})
		}
	}
	return result, nil
}

func (m *mockBookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.BookingWithUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.BookingWithUser, 0)
	for _, b := range m.bookings {
		if b.EventID == eventID {
			result = append(result, &domain.BookingWithUser{Booking: b, User: m.users[b.UserID]})
		}
	}
	return result, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	m.bookings[b.ID] = b
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

// mockHasher stores "salt|password" as the hash so Compare can check without bcrypt.
type mockHasher struct {
	saltErr error
	hashErr error
}

func (m *mockHasher) GenerateSalt() (string, error) {
	if m.saltErr != nil {
		return "", m.saltErr
	}
	return "test-salt", nil
}

func (m *mockHasher) Hash(salt, password string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return salt + "|" + password, nil
}

func (m *mockHasher) Compare(hash, salt, password string) error {
	if hash != salt+"|"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	err error
}

func (m *mockTokenIssuer) Issue(userID int64, email, displayName string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-" + strconv.FormatInt(userID, 10), nil
}

type mockTokenVerifier struct {
	userID int64
	err    error
}

func (m *mockTokenVerifier) Verify(token string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.userID, nil
}

type mockEmailService struct {
	welcomeSent   []*domain.WelcomeEmailData
	confirmedSent []*domain.BookingConfirmedEmailData
	err           error
}

func (m *mockEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.welcomeSent = append(m.welcomeSent, data)
	return nil
}

func (m *mockEmailService) SendBookingConfirmed(ctx context.Context, data *domain.BookingConfirmedEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.confirmedSent = append(m.confirmedSent, data)
	return nil
}
