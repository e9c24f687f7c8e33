package service

import (
	"context"
	"sync"
	"time"

	"gopkg.in/guregu/null.v4"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int]*domain.User
	nextID int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int]*domain.User{}, nextID: 100}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, repository.ErrDuplicateEntry
		}
	}
	r.nextID++
	created := *u
	created.ID = r.nextID
	created.Role = domain.RoleUser
	r.users[created.ID] = &created
	return &created, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id int, dto domain.UpdateProfileDTO) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Email, u.Name, u.Phone = dto.Email, dto.Name, null.StringFrom(dto.Phone)
	return u, nil
}

type fakeCarRepo struct {
	cars map[int]*domain.Car
}

func (r *fakeCarRepo) Create(_ context.Context, c *domain.Car) (*domain.Car, error) {
	c.ID = len(r.cars) + 1
	r.cars[c.ID] = c
	return c, nil
}

func (r *fakeCarRepo) FindOwned(_ context.Context, id, userID int) (*domain.Car, error) {
	if c, ok := r.cars[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCarRepo) ListByUser(_ context.Context, userID int) ([]domain.Car, error) {
	out := []domain.Car{}
	for _, c := range r.cars {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCarRepo) Update(_ context.Context, c *domain.Car) (*domain.Car, error) {
	r.cars[c.ID] = c
	return c, nil
}

func (r *fakeCarRepo) SoftDelete(_ context.Context, id, userID int) error {
	if c, ok := r.cars[id]; ok && c.UserID == userID {
		delete(r.cars, id)
		return nil
	}
	return repository.ErrNotFound
}

type fakeSpotRepo struct {
	spots map[int]*domain.ParkingSpot
}

func (r *fakeSpotRepo) Create(_ context.Context, s *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	s.ID = len(r.spots) + 1
	r.spots[s.ID] = s
	return s, nil
}

func (r *fakeSpotRepo) FindByID(_ context.Context, id int) (*domain.ParkingSpot, error) {
	if s, ok := r.spots[id]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSpotRepo) FindAll(_ context.Context) ([]domain.ParkingSpot, error) {
	out := []domain.ParkingSpot{}
	for _, s := range r.spots {
		out = append(out, *s)
	}
	return out, nil
}

type staffKey struct {
	kind   domain.StaffKind
	userID int
}

type fakeStaffRepo struct {
	records  map[staffKey]*domain.StaffRecord
	approved []int
	rejected []int
}

func (r *fakeStaffRepo) FindActiveByUser(_ context.Context, kind domain.StaffKind, userID int) (*domain.StaffRecord, error) {
	if rec, ok := r.records[staffKey{kind, userID}]; ok {
		return rec, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeStaffRepo) Create(_ context.Context, kind domain.StaffKind, rec *domain.StaffRecord) (*domain.StaffRecord, error) {
	key := staffKey{kind, rec.UserID}
	if _, ok := r.records[key]; ok {
		return nil, repository.ErrDuplicateEntry
	}
	rec.ID = len(r.records) + 1
	r.records[key] = rec
	return rec, nil
}

func (r *fakeStaffRepo) ListPending(_ context.Context, kind domain.StaffKind) ([]domain.PendingStaff, error) {
	out := []domain.PendingStaff{}
	for k, rec := range r.records {
		if k.kind == kind && !rec.Approved {
			out = append(out, domain.PendingStaff{ID: rec.ID})
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) ListApprovedDrivers(_ context.Context, spotID int) ([]domain.LotDriver, error) {
	out := []domain.LotDriver{}
	for k, rec := range r.records {
		if k.kind == domain.StaffDriver && rec.Approved && rec.ParkingSpotID == spotID {
			out = append(out, domain.LotDriver{ID: rec.ID})
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) Approve(_ context.Context, kind domain.StaffKind, id int) error {
	for k, rec := range r.records {
		if k.kind == kind && rec.ID == id {
			rec.Approved = true
			r.approved = append(r.approved, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeStaffRepo) Reject(_ context.Context, kind domain.StaffKind, id int) error {
	for k, rec := range r.records {
		if k.kind == kind && rec.ID == id {
			delete(r.records, k)
			r.rejected = append(r.rejected, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeParkedCarRepo mimics the conditional updates of the SQL repository.
type fakeParkedCarRepo struct {
	mu        sync.Mutex
	cars      map[int]*domain.ParkedCar
	payments  []*domain.Payment
	createErr error
}

func newFakeParkedCarRepo() *fakeParkedCarRepo {
	return &fakeParkedCarRepo{cars: map[int]*domain.ParkedCar{}}
}

func (r *fakeParkedCarRepo) CreateWithPayment(_ context.Context, pc *domain.ParkedCar, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.cars {
		if existing.CarID == pc.CarID && existing.Status.Active() {
			return repository.ErrActiveSessionExists
		}
	}
	now := time.Now().UTC()
	pc.ID = len(r.cars) + 1
	pc.ParkedAt, pc.CreatedAt, pc.UpdatedAt = now, now, now
	stored := *pc
	r.cars[pc.ID] = &stored
	p.ID = len(r.payments) + 1
	p.ParkedCarID = pc.ID
	p.CreatedAt = now
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakeParkedCarRepo) FindByID(_ context.Context, id int) (*domain.ParkedCar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pc, ok := r.cars[id]; ok {
		out := *pc
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeParkedCarRepo) RequestRetrieval(_ context.Context, id, userID int) (*domain.ParkedCar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pc, ok := r.cars[id]
	if !ok || pc.UserID != userID || !pc.Status.Active() {
		return nil, repository.ErrNotFound
	}
	pc.Status = domain.StatusRetrieve
	out := *pc
	return &out, nil
}

func (r *fakeParkedCarRepo) AssignDriver(_ context.Context, id, driverID, spotID int) (*domain.ParkedCar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pc, ok := r.cars[id]
	if !ok || pc.ParkingSpotID != spotID {
		return nil, repository.ErrNotFound
	}
	if pc.DriverID.Valid {
		return nil, repository.ErrAlreadyAssigned
	}
	pc.DriverID = null.IntFrom(int64(driverID))
	out := *pc
	return &out, nil
}

func (r *fakeParkedCarRepo) UpdateStatus(_ context.Context, id, driverID, spotID int, status domain.ParkedCarStatus) (*domain.ParkedCar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pc, ok := r.cars[id]
	if !ok || pc.ParkingSpotID != spotID {
		return nil, repository.ErrNotFound
	}
	if pc.DriverID.Valid && int(pc.DriverID.Int64) != driverID {
		return nil, repository.ErrAlreadyAssigned
	}
	pc.Status = status
	pc.DriverID = null.IntFrom(int64(driverID))
	if status == domain.StatusRetrieved {
		pc.RetrievedAt = null.TimeFrom(time.Now().UTC())
	}
	out := *pc
	return &out, nil
}

func (r *fakeParkedCarRepo) views(match func(pc *domain.ParkedCar) bool) []domain.ParkedCarView {
	out := []domain.ParkedCarView{}
	for _, pc := range r.cars {
		if match(pc) {
			out = append(out, domain.ParkedCarView{ID: pc.ID, Status: pc.Status, ParkedPos: pc.ParkedPos})
		}
	}
	return out
}

func (r *fakeParkedCarRepo) ListUnassignedForLot(_ context.Context, spotID int) ([]domain.ParkedCarView, error) {
	return r.views(func(pc *domain.ParkedCar) bool {
		return pc.ParkingSpotID == spotID && pc.Status.Active() && !pc.DriverID.Valid
	}), nil
}

func (r *fakeParkedCarRepo) ListAssignedForDriver(_ context.Context, spotID, driverID int) ([]domain.ParkedCarView, error) {
	return r.views(func(pc *domain.ParkedCar) bool {
		return pc.ParkingSpotID == spotID && pc.Status.Active() && pc.DriverID.Valid && int(pc.DriverID.Int64) == driverID
	}), nil
}

func (r *fakeParkedCarRepo) ListLotQueue(_ context.Context, spotID int) ([]domain.ParkedCarView, error) {
	return r.views(func(pc *domain.ParkedCar) bool {
		return pc.ParkingSpotID == spotID && (pc.Status == domain.StatusParking || pc.Status == domain.StatusRetrieve)
	}), nil
}

func (r *fakeParkedCarRepo) FindActiveForUser(_ context.Context, userID int) (*domain.ParkedCarView, error) {
	vs := r.views(func(pc *domain.ParkedCar) bool { return pc.UserID == userID && pc.Status.Active() })
	if len(vs) == 0 {
		return nil, repository.ErrNotFound
	}
	return &vs[0], nil
}

func (r *fakeParkedCarRepo) ListRecentForUser(_ context.Context, userID, limit, offset int) ([]domain.ParkedCarView, int, error) {
	vs := r.views(func(pc *domain.ParkedCar) bool { return pc.UserID == userID })
	total := len(vs)
	if offset >= total {
		return []domain.ParkedCarView{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return vs[offset:end], total, nil
}

type fakePaymentRepo struct {
	payments map[int]*domain.Payment
}

func (r *fakePaymentRepo) ListByUser(_ context.Context, userID int) ([]domain.PaymentHistoryItem, error) {
	out := []domain.PaymentHistoryItem{}
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, domain.PaymentHistoryItem{ID: p.ID, Amount: p.Amount, Status: p.Status})
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id int, status domain.PaymentStatus) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Status = status
	return p, nil
}

type fakeReportRepo struct {
	filters []domain.ParkedCarFilter
	views   []domain.ParkedCarView
	totals  map[bool]domain.LotTotals // keyed by "windowed"
	active  int
}

func (r *fakeReportRepo) SearchParkedCars(_ context.Context, f domain.ParkedCarFilter) ([]domain.ParkedCarView, int, error) {
	r.filters = append(r.filters, f)
	return r.views, len(r.views), nil
}

func (r *fakeReportRepo) LotTotals(_ context.Context, _ int, from, _ time.Time) (domain.LotTotals, error) {
	return r.totals[!from.IsZero()], nil
}

func (r *fakeReportRepo) CountByStatus(_ context.Context, _ int, _ ...domain.ParkedCarStatus) (int, error) {
	return r.active, nil
}

type fixedLabeler string

func (l fixedLabeler) Label(*domain.ParkingSpot) string { return string(l) }

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ParkedCarEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.ParkedCarEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}
