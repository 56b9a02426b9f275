package services

// ServiceContainer holds instances of all the application services.
// Handlers receive this and pick the facades they need.
type ServiceContainer struct {
	Ledger        LedgerService
	Article       ArticleService
	Community     CommunityService
	Post          PostService
	Creator       CreatorService
	PaymentMethod PaymentMethodService
	User          UserService
	GoogleOAuth   GoogleOAuthService
}
