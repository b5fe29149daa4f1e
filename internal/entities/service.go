package entities

import "context"

// Service handles tenant entity business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListHostels returns all hostels.
func (s *Service) ListHostels(ctx context.Context) ([]Hostel, error) {
	return s.repo.ListHostels(ctx)
}

// CreateHostel inserts a new hostel.
func (s *Service) CreateHostel(ctx context.Context, h Hostel) (*Hostel, error) {
	return s.repo.CreateHostel(ctx, h)
}

// UpdateHostel updates an existing hostel.
func (s *Service) UpdateHostel(ctx context.Context, h Hostel) (*Hostel, error) {
	return s.repo.UpdateHostel(ctx, h)
}

// DeleteHostel removes a hostel.
func (s *Service) DeleteHostel(ctx context.Context, id string) error {
	return s.repo.DeleteHostel(ctx, id)
}

// ListCorporateOffices returns all corporate offices.
func (s *Service) ListCorporateOffices(ctx context.Context) ([]CorporateOffice, error) {
	return s.repo.ListCorporateOffices(ctx)
}

// CreateCorporateOffice inserts a new corporate office.
func (s *Service) CreateCorporateOffice(ctx context.Context, o CorporateOffice) (*CorporateOffice, error) {
	return s.repo.CreateCorporateOffice(ctx, o)
}
