package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// memStore is an in-memory repository.Store for service tests. WithinTx runs
// the function against the same maps, so tests observe committed state.
type memStore struct {
	data  *memData
	repos *repository.Repositories
}

type memData struct {
	clients     map[int32]domain.Client
	employees   map[int32]domain.Employee
	categories  map[int32]domain.VehicleCategory
	vehicles    map[int32]domain.Vehicle
	rentals     map[int32]domain.Rental
	maintenance map[int32]domain.MaintenanceWindow
	charges     map[int32]domain.Charge
	nextID      int32
}

func newMemStore() *memStore {
	data := &memData{
		clients:     make(map[int32]domain.Client),
		employees:   make(map[int32]domain.Employee),
		categories:  make(map[int32]domain.VehicleCategory),
		vehicles:    make(map[int32]domain.Vehicle),
		rentals:     make(map[int32]domain.Rental),
		maintenance: make(map[int32]domain.MaintenanceWindow),
		charges:     make(map[int32]domain.Charge),
	}
	return &memStore{
		data: data,
		repos: &repository.Repositories{
			Clients:     &memClientRepo{data},
			Employees:   &memEmployeeRepo{data},
			Categories:  &memCategoryRepo{data},
			Vehicles:    &memVehicleRepo{data},
			Rentals:     &memRentalRepo{data},
			Maintenance: &memMaintenanceRepo{data},
			Charges:     &memChargeRepo{data},
		},
	}
}

func (s *memStore) Repos() *repository.Repositories { return s.repos }

func (s *memStore) WithinTx(_ context.Context, fn func(r *repository.Repositories) error) error {
	return fn(s.repos)
}

func (d *memData) id() int32 {
	d.nextID++
	return d.nextID
}

// Seed helpers.

func (s *memStore) addClient(c domain.Client) int32 {
	c.ID = s.data.id()
	s.data.clients[c.ID] = c
	return c.ID
}

func (s *memStore) addEmployee(e domain.Employee) int32 {
	e.ID = s.data.id()
	if e.Role == "" {
		e.Role = domain.EmployeeRoleStaff
	}
	e.Active = true
	s.data.employees[e.ID] = e
	return e.ID
}

func (s *memStore) addCategory(c domain.VehicleCategory) int32 {
	c.ID = s.data.id()
	s.data.categories[c.ID] = c
	return c.ID
}

func (s *memStore) addVehicle(v domain.Vehicle) int32 {
	v.ID = s.data.id()
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	s.data.vehicles[v.ID] = v
	return v.ID
}

func (s *memStore) addRental(r domain.Rental) int32 {
	r.ID = s.data.id()
	if r.Status == "" {
		r.Status = domain.RentalStatusPending
	}
	s.data.rentals[r.ID] = r
	return r.ID
}

func (s *memStore) addMaintenance(m domain.MaintenanceWindow) int32 {
	m.ID = s.data.id()
	if m.Type == "" {
		m.Type = domain.MaintenanceCorrective
	}
	s.data.maintenance[m.ID] = m
	return m.ID
}

func (s *memStore) rental(id int32) domain.Rental   { return s.data.rentals[id] }
func (s *memStore) vehicle(id int32) domain.Vehicle { return s.data.vehicles[id] }

// Client repository.

type memClientRepo struct{ d *memData }

func (r *memClientRepo) Create(_ context.Context, c *domain.Client) error {
	c.ID = r.d.id()
	r.d.clients[c.ID] = *c
	return nil
}

func (r *memClientRepo) GetByID(_ context.Context, id int32) (*domain.Client, error) {
	c, ok := r.d.clients[id]
	if !ok {
		return nil, domain.NewNotFound("client", id)
	}
	return &c, nil
}

func (r *memClientRepo) Update(_ context.Context, c *domain.Client) error {
	if _, ok := r.d.clients[c.ID]; !ok {
		return domain.NewNotFound("client", c.ID)
	}
	r.d.clients[c.ID] = *c
	return nil
}

func (r *memClientRepo) Delete(_ context.Context, id int32) error {
	if _, ok := r.d.clients[id]; !ok {
		return domain.NewNotFound("client", id)
	}
	delete(r.d.clients, id)
	return nil
}

func (r *memClientRepo) List(_ context.Context, query string) ([]domain.Client, error) {
	var out []domain.Client
	q := strings.ToLower(query)
	for _, c := range r.d.clients {
		if q == "" ||
			strings.Contains(strings.ToLower(c.FirstName), q) ||
			strings.Contains(strings.ToLower(c.LastName), q) ||
			strings.Contains(strings.ToLower(c.Document), q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Employee repository.

type memEmployeeRepo struct{ d *memData }

func (r *memEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	e.ID = r.d.id()
	r.d.employees[e.ID] = *e
	return nil
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id int32) (*domain.Employee, error) {
	e, ok := r.d.employees[id]
	if !ok {
		return nil, domain.NewNotFound("employee", id)
	}
	return &e, nil
}

func (r *memEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, e := range r.d.employees {
		if e.Email == email {
			return &e, nil
		}
	}
	return nil, domain.NewNotFound("employee", 0)
}

func (r *memEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	if _, ok := r.d.employees[e.ID]; !ok {
		return domain.NewNotFound("employee", e.ID)
	}
	r.d.employees[e.ID] = *e
	return nil
}

func (r *memEmployeeRepo) Delete(_ context.Context, id int32) error {
	if _, ok := r.d.employees[id]; !ok {
		return domain.NewNotFound("employee", id)
	}
	delete(r.d.employees, id)
	return nil
}

func (r *memEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, e := range r.d.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Category repository.

type memCategoryRepo struct{ d *memData }

func (r *memCategoryRepo) Create(_ context.Context, c *domain.VehicleCategory) error {
	c.ID = r.d.id()
	r.d.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id int32) (*domain.VehicleCategory, error) {
	c, ok := r.d.categories[id]
	if !ok {
		return nil, domain.NewNotFound("category", id)
	}
	return &c, nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *domain.VehicleCategory) error {
	if _, ok := r.d.categories[c.ID]; !ok {
		return domain.NewNotFound("category", c.ID)
	}
	r.d.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id int32) error {
	if _, ok := r.d.categories[id]; !ok {
		return domain.NewNotFound("category", id)
	}
	delete(r.d.categories, id)
	return nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]domain.VehicleCategory, error) {
	var out []domain.VehicleCategory
	for _, c := range r.d.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Vehicle repository.

type memVehicleRepo struct{ d *memData }

func (r *memVehicleRepo) Create(_ context.Context, v *domain.Vehicle) error {
	v.ID = r.d.id()
	r.d.vehicles[v.ID] = *v
	return nil
}

func (r *memVehicleRepo) GetByID(_ context.Context, id int32) (*domain.Vehicle, error) {
	v, ok := r.d.vehicles[id]
	if !ok {
		return nil, domain.NewNotFound("vehicle", id)
	}
	return &v, nil
}

func (r *memVehicleRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return r.GetByID(ctx, id)
}

func (r *memVehicleRepo) Update(_ context.Context, v *domain.Vehicle) error {
	if _, ok := r.d.vehicles[v.ID]; !ok {
		return domain.NewNotFound("vehicle", v.ID)
	}
	r.d.vehicles[v.ID] = *v
	return nil
}

func (r *memVehicleRepo) UpdateStatus(_ context.Context, id int32, status domain.VehicleStatus) error {
	v, ok := r.d.vehicles[id]
	if !ok {
		return domain.NewNotFound("vehicle", id)
	}
	v.Status = status
	r.d.vehicles[id] = v
	return nil
}

func (r *memVehicleRepo) Delete(_ context.Context, id int32) error {
	if _, ok := r.d.vehicles[id]; !ok {
		return domain.NewNotFound("vehicle", id)
	}
	delete(r.d.vehicles, id)
	return nil
}

func (r *memVehicleRepo) List(_ context.Context, status domain.VehicleStatus, categoryID int32) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	for _, v := range r.d.vehicles {
		if status != "" && v.Status != status {
			continue
		}
		if categoryID != 0 && v.CategoryID != categoryID {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Rental repository.

type memRentalRepo struct{ d *memData }

func (r *memRentalRepo) Create(_ context.Context, rt *domain.Rental) error {
	rt.ID = r.d.id()
	rt.CreatedOn = time.Now()
	rt.UpdatedOn = rt.CreatedOn
	r.d.rentals[rt.ID] = *rt
	return nil
}

func (r *memRentalRepo) GetByID(_ context.Context, id int32) (*domain.Rental, error) {
	rt, ok := r.d.rentals[id]
	if !ok {
		return nil, domain.NewNotFound("rental", id)
	}
	return &rt, nil
}

func (r *memRentalRepo) Update(_ context.Context, rt *domain.Rental) error {
	if _, ok := r.d.rentals[rt.ID]; !ok {
		return domain.NewNotFound("rental", rt.ID)
	}
	rt.UpdatedOn = time.Now()
	r.d.rentals[rt.ID] = *rt
	return nil
}

func (r *memRentalRepo) Delete(_ context.Context, id int32) error {
	if _, ok := r.d.rentals[id]; !ok {
		return domain.NewNotFound("rental", id)
	}
	delete(r.d.rentals, id)
	return nil
}

func (r *memRentalRepo) List(_ context.Context, f repository.RentalFilter) ([]domain.Rental, error) {
	var out []domain.Rental
	for _, rt := range r.d.rentals {
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, rt.Status) {
			continue
		}
		if f.ClientID != 0 && rt.ClientID != f.ClientID {
			continue
		}
		if f.VehicleID != 0 && rt.VehicleID != f.VehicleID {
			continue
		}
		if f.EmployeeID != 0 && rt.EmployeeID != f.EmployeeID {
			continue
		}
		if f.StartFrom != nil && rt.StartDate.Before(*f.StartFrom) {
			continue
		}
		if f.StartTo != nil && rt.StartDate.After(*f.StartTo) {
			continue
		}
		if f.EndFrom != nil && rt.EndDate.Before(*f.EndFrom) {
			continue
		}
		if f.EndTo != nil && rt.EndDate.After(*f.EndTo) {
			continue
		}
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRentalRepo) ListByVehicle(_ context.Context, vehicleID int32, statuses []domain.RentalStatus) ([]domain.Rental, error) {
	var out []domain.Rental
	for _, rt := range r.d.rentals {
		if rt.VehicleID != vehicleID {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, rt.Status) {
			continue
		}
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRentalRepo) ListByClient(_ context.Context, clientID int32, page, pageSize int32, from, to *time.Time) ([]domain.Rental, int32, error) {
	var all []domain.Rental
	for _, rt := range r.d.rentals {
		if rt.ClientID != clientID {
			continue
		}
		if from != nil && rt.StartDate.Before(*from) {
			continue
		}
		if to != nil && rt.StartDate.After(*to) {
			continue
		}
		all = append(all, rt)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartDate.After(all[j].StartDate) })

	total := int32(len(all))
	offset := (page - 1) * pageSize
	if offset >= total {
		return nil, total, nil
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func containsStatus(set []domain.RentalStatus, s domain.RentalStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Maintenance repository.

type memMaintenanceRepo struct{ d *memData }

func (r *memMaintenanceRepo) Create(_ context.Context, m *domain.MaintenanceWindow) error {
	m.ID = r.d.id()
	r.d.maintenance[m.ID] = *m
	return nil
}

func (r *memMaintenanceRepo) GetByID(_ context.Context, id int32) (*domain.MaintenanceWindow, error) {
	m, ok := r.d.maintenance[id]
	if !ok {
		return nil, domain.NewNotFound("maintenance window", id)
	}
	return &m, nil
}

func (r *memMaintenanceRepo) Update(_ context.Context, m *domain.MaintenanceWindow) error {
	if _, ok := r.d.maintenance[m.ID]; !ok {
		return domain.NewNotFound("maintenance window", m.ID)
	}
	r.d.maintenance[m.ID] = *m
	return nil
}

func (r *memMaintenanceRepo) Delete(_ context.Context, id int32) error {
	if _, ok := r.d.maintenance[id]; !ok {
		return domain.NewNotFound("maintenance window", id)
	}
	delete(r.d.maintenance, id)
	return nil
}

func (r *memMaintenanceRepo) List(_ context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceWindow, error) {
	today := domain.Today()
	var out []domain.MaintenanceWindow
	for _, m := range r.d.maintenance {
		if f.VehicleID != 0 && m.VehicleID != f.VehicleID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.EmployeeID != 0 && (m.EmployeeID == nil || *m.EmployeeID != f.EmployeeID) {
			continue
		}
		if f.State == "in_progress" && !m.InProgress(today) {
			continue
		}
		if f.State == "finished" && m.InProgress(today) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMaintenanceRepo) ListByVehicle(_ context.Context, vehicleID int32) ([]domain.MaintenanceWindow, error) {
	var out []domain.MaintenanceWindow
	for _, m := range r.d.maintenance {
		if m.VehicleID == vehicleID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMaintenanceRepo) LatestByVehicle(_ context.Context, vehicleID int32) (*domain.MaintenanceWindow, error) {
	var latest *domain.MaintenanceWindow
	for _, m := range r.d.maintenance {
		if m.VehicleID != vehicleID {
			continue
		}
		m := m
		if latest == nil || m.StartDate.After(latest.StartDate) ||
			(m.StartDate.Equal(latest.StartDate) && m.ID > latest.ID) {
			latest = &m
		}
	}
	return latest, nil
}

// Charge repository.

type memChargeRepo struct{ d *memData }

func (r *memChargeRepo) Create(_ context.Context, c *domain.Charge) error {
	c.ID = r.d.id()
	r.d.charges[c.ID] = *c
	return nil
}

func (r *memChargeRepo) GetByID(_ context.Context, id int32) (*domain.Charge, error) {
	c, ok := r.d.charges[id]
	if !ok {
		return nil, domain.NewNotFound("charge", id)
	}
	return &c, nil
}

func (r *memChargeRepo) Update(_ context.Context, c *domain.Charge) error {
	if _, ok := r.d.charges[c.ID]; !ok {
		return domain.NewNotFound("charge", c.ID)
	}
	r.d.charges[c.ID] = *c
	return nil
}

func (r *memChargeRepo) Delete(_ context.Context, id int32) error {
	if _, ok := r.d.charges[id]; !ok {
		return domain.NewNotFound("charge", id)
	}
	delete(r.d.charges, id)
	return nil
}

func (r *memChargeRepo) List(_ context.Context, f repository.ChargeFilter) ([]domain.Charge, error) {
	var out []domain.Charge
	for _, c := range r.d.charges {
		if f.RentalID != 0 && c.RentalID != f.RentalID {
			continue
		}
		if len(f.Types) > 0 && !containsChargeType(f.Types, c.Type) {
			continue
		}
		if f.AmountFrom != nil && c.Amount.LessThan(*f.AmountFrom) {
			continue
		}
		if f.AmountTo != nil && c.Amount.GreaterThan(*f.AmountTo) {
			continue
		}
		if f.From != nil && c.RecordedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && c.RecordedAt.After(*f.To) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memChargeRepo) ListByRental(_ context.Context, rentalID int32) ([]domain.Charge, error) {
	var out []domain.Charge
	for _, c := range r.d.charges {
		if c.RentalID == rentalID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memChargeRepo) CountByRental(_ context.Context, rentalID int32) (int32, error) {
	var count int32
	for _, c := range r.d.charges {
		if c.RentalID == rentalID {
			count++
		}
	}
	return count, nil
}

func containsChargeType(set []domain.ChargeType, t domain.ChargeType) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}
