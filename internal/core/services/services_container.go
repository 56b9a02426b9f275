package services

import (
	portsevents "github.com/tipnest/tipnest_backend/internal/core/ports/events"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/platform/cache"
	"github.com/tipnest/tipnest_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher and catalogCache may be nil; the dependent services degrade gracefully.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	publisher portsevents.Publisher,
	catalogCache *cache.Cache,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		repos.ArticleRepo,
		repos.CommunityRepo,
		repos.PostRepo,
		repos.CreatorRepo,
		repos.PaymentMethodRepo,
		publisher,
		catalogCache,
		cfg.TipMinimumCents,
	)

	container.Article = NewArticleService(repos.ArticleRepo, repos.LedgerRepo, repos.UserRepo, catalogCache)
	container.Community = NewCommunityService(repos.CommunityRepo, repos.LedgerRepo)
	container.Post = NewPostService(repos.PostRepo, catalogCache)
	container.Creator = NewCreatorService(repos.CreatorRepo)
	container.PaymentMethod = NewPaymentMethodService(repos.PaymentMethodRepo)
	container.User = NewUserService(repos.UserRepo, cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg, repos.UserRepo)

	return container
}
