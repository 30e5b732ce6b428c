package usecase

import (
	"context"
	"errors"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/ports"
)

// Service is the facade the adapters talk to. Every port is optional; a nil
// dependency surfaces as a configuration error rather than a panic.
type Service struct {
	Solver    ports.Solver
	Loader    ports.Loader
	Fetcher   ports.Fetcher
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Parse(text string) (domain.Game, error) {
	if u.Loader == nil {
		return domain.Game{}, errNotConfigured
	}
	return u.Loader.Parse(text)
}

func (u *Service) Format(g domain.Game) (string, error) {
	if u.Loader == nil {
		return "", errNotConfigured
	}
	return u.Loader.Format(g), nil
}

func (u *Service) Solve(ctx context.Context, g domain.Game) ([]domain.Placement, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, g)
}

func (u *Service) Count(ctx context.Context, g domain.Game, limit int) (int, []domain.Placement, ports.Stats, error) {
	if u.Solver == nil {
		return 0, nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Count(ctx, g, limit)
}

func (u *Service) Fetch(ctx context.Context, date string, d domain.Difficulty) (*domain.Puzzle, error) {
	if u.Fetcher == nil {
		return nil, errNotConfigured
	}
	return u.Fetcher.Fetch(ctx, date, d)
}

func (u *Service) Generate(ctx context.Context, seed int64, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, d)
}

func (u *Service) Validate(ctx context.Context, g domain.Game) (bool, []domain.Conflict, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, g)
}

func (u *Service) Hint(ctx context.Context, g domain.Game) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, g)
}

// Persistence
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
