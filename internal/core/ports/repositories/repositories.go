package repositories

// RepositoryProvider bundles all repository facades for injection into the
// service container.
type RepositoryProvider struct {
	ApplicationRepo  ApplicationRepositoryFacade
	WorkflowRepo     WorkflowRepositoryFacade
	WorkflowLogRepo  WorkflowLogRepositoryFacade
	NotificationRepo NotificationRepository
	ReportingRepo    ReportingRepository
	UserRepo         UserRepositoryFacade
	ClientRepo       ClientRepositoryFacade
	TransferRepo     TransferRepositoryFacade
}
