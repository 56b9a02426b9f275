package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:        newPgxLedgerRepository(dbPool),
		ArticleRepo:       newPgxArticleRepository(dbPool),
		CommunityRepo:     newPgxCommunityRepository(dbPool),
		PostRepo:          newPgxPostRepository(dbPool),
		CreatorRepo:       newPgxCreatorRepository(dbPool),
		PaymentMethodRepo: newPgxPaymentMethodRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
	}
}
