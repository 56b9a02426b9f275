package repositories

// RepositoryProvider bundles every repository implementation for service wiring.
type RepositoryProvider struct {
	LedgerRepo        LedgerRepositoryFacade
	ArticleRepo       ArticleRepository
	CommunityRepo     CommunityRepository
	PostRepo          PostRepository
	CreatorRepo       CreatorRepository
	PaymentMethodRepo PaymentMethodRepository
	UserRepo          UserRepository
}
