package store

import (
	"basegraph.app/backoffice/core/db"
)

// Stores hands out stores bound to one connection or transaction.
type Stores struct {
	conn db.DBTX
}

func NewStores(conn db.DBTX) *Stores {
	return &Stores{conn: conn}
}

func (s *Stores) Accounts() AccountStore {
	return newAccountStore(s.conn)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.conn)
}

func (s *Stores) Newsletters() NewsletterStore {
	return newNewsletterStore(s.conn)
}

func (s *Stores) Contacts() ContactStore {
	return newContactStore(s.conn)
}

func (s *Stores) LandingPages() LandingPageStore {
	return newLandingPageStore(s.conn)
}

func (s *Stores) APIKeys() APIKeyStore {
	return newAPIKeyStore(s.conn)
}

func (s *Stores) Submissions() SubmissionStore {
	return newSubmissionStore(s.conn)
}

func (s *Stores) Audit() AuditStore {
	return newAuditStore(s.conn)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.conn)
}
