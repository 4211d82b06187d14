package repositories

// RepositoryProvider aggregates every repository facade the service layer
// depends on, so wiring happens in one place.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	ReportingRepo ReportingRepository
	ReportRepo    ReportRepositoryFacade
	ClientRepo    ClientRepositoryFacade
}
