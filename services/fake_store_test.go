package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"smartpay/backend/models"
	"smartpay/backend/store"
)

// memStore is an in-memory RecordStore for service tests.
type memStore struct {
	payments  []models.PaymentRecord
	residents map[string]models.Resident
	dues      map[int64]models.Dues
	filters   map[string]models.SavedFilter
	accounts  map[string]models.Account

	nextID    int64
	listErr   error
	uploadErr error
	uploads   []string
	getErr    error

	insertResidentErr error
}

func newMemStore() *memStore {
	return &memStore{
		residents: map[string]models.Resident{},
		dues:      map[int64]models.Dues{},
		filters:   map[string]models.SavedFilter{},
		accounts:  map[string]models.Account{},
	}
}

func (m *memStore) ListPayments(_ context.Context, scope store.Scope) ([]models.PaymentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []models.PaymentRecord{}
	for i := len(m.payments) - 1; i >= 0; i-- {
		p := m.payments[i]
		if scope.ResidentID != "" && p.ResidentID != scope.ResidentID {
			continue
		}
		if r, ok := m.residents[p.ResidentID]; ok {
			p.Resident = &models.ResidentRef{HouseholdName: r.HouseholdName, HouseBlock: r.HouseBlock, Email: r.Email}
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) InsertPayment(_ context.Context, p *models.PaymentRecord) error {
	m.nextID++
	p.ID = m.nextID
	m.payments = append(m.payments, *p)
	return nil
}

func (m *memStore) UploadProof(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	m.uploads = append(m.uploads, name)
	return "https://files.example/" + name, nil
}

func (m *memStore) GetResident(_ context.Context, id string) (*models.Resident, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.residents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &r, nil
}

func (m *memStore) InsertResident(_ context.Context, r models.Resident) error {
	if m.insertResidentErr != nil {
		return m.insertResidentErr
	}
	if _, ok := m.residents[r.ID]; ok {
		return store.ErrDuplicate
	}
	m.residents[r.ID] = r
	return nil
}

func (m *memStore) ListDues(context.Context) ([]models.Dues, error) {
	out := []models.Dues{}
	for _, d := range m.dues {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memStore) InsertDues(_ context.Context, d *models.Dues) error {
	m.nextID++
	d.ID = m.nextID
	m.dues[d.ID] = *d
	return nil
}

func (m *memStore) UpdateDues(_ context.Context, d models.Dues) error {
	if _, ok := m.dues[d.ID]; !ok {
		return store.ErrNotFound
	}
	m.dues[d.ID] = d
	return nil
}

func (m *memStore) DeleteDues(_ context.Context, id int64) error {
	if _, ok := m.dues[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.dues, id)
	return nil
}

func (m *memStore) ListSavedFilters(_ context.Context, userID, resourceType string) ([]models.SavedFilter, error) {
	out := []models.SavedFilter{}
	for _, f := range m.filters {
		if f.UserID == userID && f.ResourceType == resourceType {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) GetSavedFilter(_ context.Context, id string) (*models.SavedFilter, error) {
	f, ok := m.filters[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &f, nil
}

func (m *memStore) InsertSavedFilter(_ context.Context, f models.SavedFilter) error {
	for _, existing := range m.filters {
		if existing.UserID == f.UserID && existing.Name == f.Name {
			return store.ErrDuplicate
		}
	}
	m.filters[f.ID] = f
	return nil
}

func (m *memStore) UpdateSavedFilter(_ context.Context, f models.SavedFilter) error {
	if _, ok := m.filters[f.ID]; !ok {
		return store.ErrNotFound
	}
	m.filters[f.ID] = f
	return nil
}

func (m *memStore) DeleteSavedFilter(_ context.Context, id string) error {
	if _, ok := m.filters[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.filters, id)
	return nil
}

func (m *memStore) InsertAccount(_ context.Context, a models.Account) error {
	key := strings.ToLower(a.Email)
	if _, ok := m.accounts[key]; ok {
		return store.ErrDuplicate
	}
	m.accounts[key] = a
	return nil
}

func (m *memStore) GetAccount(_ context.Context, email string) (*models.Account, error) {
	a, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

var errBoom = errors.New("boom")
