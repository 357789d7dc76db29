package service

import (
	"basegraph.app/backoffice/internal/audit"
	"basegraph.app/backoffice/internal/identity"
	"basegraph.app/backoffice/internal/metrics"
	"basegraph.app/backoffice/internal/store"
)

type Services struct {
	stores           *store.Stores
	txRunner         TxRunner
	identity         identity.Provider
	sinks            Sinks
	lastLoginWorkers int
}

func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	provider identity.Provider,
	recorder audit.Recorder,
	m *metrics.Metrics,
	lastLoginWorkers int,
) *Services {
	return &Services{
		stores:           stores,
		txRunner:         txRunner,
		identity:         provider,
		sinks:            Sinks{Audit: recorder, Metrics: m},
		lastLoginWorkers: lastLoginWorkers,
	}
}

func (s *Services) Accounts() AccountService {
	return NewAccountService(s.stores.Accounts(), s.identity, s.lastLoginWorkers, s.sinks)
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores.Organizations(), s.sinks)
}

func (s *Services) Newsletters() NewsletterService {
	return NewNewsletterService(s.stores.Newsletters(), s.sinks)
}

func (s *Services) Contacts() ContactService {
	return NewContactService(s.stores.Contacts(), s.sinks)
}

func (s *Services) LandingPages() LandingPageService {
	return NewLandingPageService(s.stores.LandingPages(), s.stores.Organizations(), s.txRunner, s.sinks)
}

func (s *Services) APIKeys() APIKeyService {
	return NewAPIKeyService(s.stores.APIKeys(), s.stores.LandingPages(), s.sinks)
}

func (s *Services) Public() PublicService {
	return NewPublicService(s.stores.Newsletters(), s.stores.Contacts(), s.stores.Submissions(), s.sinks)
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Accounts(), s.stores.Sessions(), s.identity)
}
