package repositories

// RepositoryProvider bundles all repository implementations for wiring
// into the service layer.
type RepositoryProvider struct {
	UserRepo       UserRepository
	AccountantRepo AccountantRepository
	BusinessRepo   BusinessRepository
}
