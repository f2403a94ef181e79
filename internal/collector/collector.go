package collector

import "context"

// StaticFetcher returns a controllable fixed price for development and testing.
type StaticFetcher struct {
	Price float64
	Err   error
	Calls int
}

func (s *StaticFetcher) Name() string { return "static" }

func (s *StaticFetcher) FetchPrice(_ context.Context) (float64, error) {
	s.Calls++
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Price, nil
}
