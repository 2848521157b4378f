package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"north-trips/internal/database"
	"north-trips/internal/model"
	"north-trips/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID = uuid.NewString
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal

	getUserByID = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	updateProfile = store.UpdateProfile
	listUsers = store.ListUsers
	deleteUser = store.DeleteUser
	adminExists = store.AdminExists
	listBookingsByUser = store.ListBookingsByUser

	withTx = database.WithTx
	getTourForUpdate = store.GetTourForUpdate
	reserveSeats = store.ReserveSeats
	releaseSeats = store.ReleaseSeats
	createBooking = store.CreateBooking
	getBookingForUpdate = store.GetBookingForUpdate
	updateBookingState = store.UpdateBookingState
	deleteBooking = store.DeleteBooking
	listBookingDetails = store.ListBookingDetails
	getBookingDetail = store.GetBookingDetail

	listTours = store.ListTours
	listFeaturedTours = store.ListFeaturedTours
	getTour = store.GetTour
	getTourImage = store.GetTourImage
	createTour = store.CreateTour
	updateTour = store.UpdateTour
	deleteTour = store.DeleteTour
	normalizeImage = NormalizeImage

	createTicket = store.CreateTicket
	listTicketDetails = store.ListTicketDetails
	getTicketStatus = store.GetTicketStatus
	closeTicket = store.CloseTicket

	countUsers = store.CountUsers
	countTours = store.CountTours
	countBookings = store.CountBookings
	countTickets = store.CountTickets
}

var (
	alice = &CustomClaims{UserID: 1, Name: "Alice", Role: model.RoleUser}
	bob   = &CustomClaims{UserID: 2, Name: "Bob", Role: model.RoleUser}
	admin = &CustomClaims{UserID: 99, Name: "Admin", Role: model.RoleAdmin}
)

func date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

/* ---------- 記憶體版 store ---------- */

type memState struct {
	tours    map[int]model.Tour
	bookings map[int]model.Booking
}

func (s memState) clone() memState {
	c := memState{tours: map[int]model.Tour{}, bookings: map[int]model.Booking{}}
	for k, v := range s.tours {
		c.tours[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	return c
}

// memStore 以 map 模擬 tours / bookings；每個交易持有全域鎖 (等同 FOR UPDATE 的序列化)，回滾時還原快照
type memStore struct {
	txMu   sync.Mutex
	state  memState
	nextID int

	// failInsert 非 nil 時 createBooking 回傳該錯誤
	failInsert error
	commits    int
	rollbacks  int
}

func newMemStore(t *testing.T, tours ...model.Tour) (*memStore, *database.FakeDB) {
	t.Helper()
	t.Cleanup(restoreGlobals)

	m := &memStore{state: memState{tours: map[int]model.Tour{}, bookings: map[int]model.Booking{}}}
	for _, tour := range tours {
		m.state.tours[tour.ID] = tour
	}

	db := &database.FakeDB{
		BeginFn: func(context.Context) (pgx.Tx, error) {
			m.txMu.Lock()
			snap := m.state.clone()
			return &database.FakeTx{
				CommitFn: func(context.Context) error {
					m.commits++
					m.txMu.Unlock()
					return nil
				},
				RollbackFn: func(context.Context) error {
					m.state = snap
					m.rollbacks++
					m.txMu.Unlock()
					return nil
				},
			}, nil
		},
	}

	getTourForUpdate = func(_ context.Context, _ database.Querier, id int) (*model.Tour, error) {
		tour, ok := m.state.tours[id]
		if !ok {
			return nil, pgx.ErrNoRows
		}
		return &tour, nil
	}
	getTour = func(ctx context.Context, _ database.Querier, id int) (*model.Tour, error) {
		m.txMu.Lock()
		defer m.txMu.Unlock()
		tour, ok := m.state.tours[id]
		if !ok {
			return nil, pgx.ErrNoRows
		}
		return &tour, nil
	}
	reserveSeats = func(_ context.Context, _ database.Querier, tourID, n int) (bool, error) {
		tour, ok := m.state.tours[tourID]
		if !ok || tour.AvailableSeats < n {
			return false, nil
		}
		tour.AvailableSeats -= n
		m.state.tours[tourID] = tour
		return true, nil
	}
	releaseSeats = func(_ context.Context, _ database.Querier, tourID, n int) error {
		if tour, ok := m.state.tours[tourID]; ok {
			tour.AvailableSeats += n
			m.state.tours[tourID] = tour
		}
		return nil
	}
	createBooking = func(_ context.Context, _ database.Querier, b *model.Booking) (*model.Booking, error) {
		if m.failInsert != nil {
			return nil, m.failInsert
		}
		m.nextID++
		b.ID = m.nextID
		b.CreatedAt = time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)
		m.state.bookings[b.ID] = *b
		return b, nil
	}
	getBookingForUpdate = func(_ context.Context, _ database.Querier, id int) (*model.Booking, error) {
		b, ok := m.state.bookings[id]
		if !ok {
			return nil, pgx.ErrNoRows
		}
		return &b, nil
	}
	updateBookingState = func(_ context.Context, _ database.Querier, b *model.Booking) error {
		if _, ok := m.state.bookings[b.ID]; !ok {
			return pgx.ErrNoRows
		}
		m.state.bookings[b.ID] = *b
		return nil
	}
	deleteBooking = func(_ context.Context, _ database.Querier, id int) error {
		if _, ok := m.state.bookings[id]; !ok {
			return pgx.ErrNoRows
		}
		delete(m.state.bookings, id)
		return nil
	}
	listBookingsByUser = func(_ context.Context, _ database.Querier, userID int) ([]model.Booking, error) {
		out := []model.Booking{}
		for id := m.nextID; id > 0; id-- {
			if b, ok := m.state.bookings[id]; ok && b.UserID == userID {
				out = append(out, b)
			}
		}
		return out, nil
	}
	listBookingDetails = func(_ context.Context, _ database.Querier, limit int) ([]model.BookingDetail, error) {
		out := []model.BookingDetail{}
		for id := m.nextID; id > 0; id-- {
			if b, ok := m.state.bookings[id]; ok {
				out = append(out, model.BookingDetail{Booking: b})
				if limit > 0 && len(out) == limit {
					break
				}
			}
		}
		return out, nil
	}
	return m, db
}

func (m *memStore) tour(id int) model.Tour {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return m.state.tours[id]
}

func (m *memStore) booking(id int) (model.Booking, bool) {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	b, ok := m.state.bookings[id]
	return b, ok
}

func (m *memStore) bookingCount() int {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return len(m.state.bookings)
}

/* ---------- 範例行程 ---------- */

func kalamTour() model.Tour {
	return model.Tour{ID: 3, Name: "Kalam Valley Expedition", Price: 38000, TourType: model.TourTypeGroup,
		AvailableSeats: 12, GroupStartDate: datePtr("2025-06-20")}
}

func skarduTour() model.Tour {
	return model.Tour{ID: 1, Name: "Skardu Adventure", Price: 45000, TourType: model.TourTypePrivate}
}

func unmanagedGroupTour() model.Tour {
	return model.Tour{ID: 7, Name: "Open Group", Price: 10000, TourType: model.TourTypeGroup,
		AvailableSeats: 0, GroupStartDate: datePtr("2025-08-01")}
}
