package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"basegraph.app/backoffice/internal/audit"
	"basegraph.app/backoffice/internal/identity"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/service"
	"basegraph.app/backoffice/internal/store"
)

type mockAccountStore struct {
	listFn           func(ctx context.Context, f store.AccountFilter) ([]model.Account, int64, error)
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*model.Account, error)
	getByEmailFn     func(ctx context.Context, email string) (*model.Account, error)
	createFn         func(ctx context.Context, account *model.Account) error
	updateFn         func(ctx context.Context, account *model.Account) error
	touchLastLoginFn func(ctx context.Context, id uuid.UUID, at time.Time) error
	createCalls      int
	updateCalls      int
	updated          []model.Account
}

func (m *mockAccountStore) List(ctx context.Context, f store.AccountFilter) ([]model.Account, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return []model.Account{}, 0, nil
}

func (m *mockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockAccountStore) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockAccountStore) Create(ctx context.Context, account *model.Account) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

func (m *mockAccountStore) Update(ctx context.Context, account *model.Account) error {
	m.updateCalls++
	m.updated = append(m.updated, *account)
	if m.updateFn != nil {
		return m.updateFn(ctx, account)
	}
	return nil
}

func (m *mockAccountStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.touchLastLoginFn != nil {
		return m.touchLastLoginFn(ctx, id, at)
	}
	return nil
}

type mockOrganizationStore struct {
	listFn            func(ctx context.Context, f store.OrganizationFilter) ([]model.Organization, int64, error)
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	findBySubdomainFn func(ctx context.Context, subdomain string, excludeID *uuid.UUID) (*model.Organization, error)
	createFn          func(ctx context.Context, org *model.Organization) error
	updateFn          func(ctx context.Context, org *model.Organization) error
	deleteFn          func(ctx context.Context, id uuid.UUID) error
	createCalls       int
	updateCalls       int
	findCalls         int
}

func (m *mockOrganizationStore) List(ctx context.Context, f store.OrganizationFilter) ([]model.Organization, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return []model.Organization{}, 0, nil
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Organization{ID: id, IsActive: true}, nil
}

func (m *mockOrganizationStore) FindBySubdomain(ctx context.Context, subdomain string, excludeID *uuid.UUID) (*model.Organization, error) {
	m.findCalls++
	if m.findBySubdomainFn != nil {
		return m.findBySubdomainFn(ctx, subdomain, excludeID)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Update(ctx context.Context, org *model.Organization) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockNewsletterStore struct {
	listFn       func(ctx context.Context, f store.SubmissionFilter) ([]model.NewsletterSubmission, int64, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*model.NewsletterSubmission, error)
	findActiveFn func(ctx context.Context, email string, orgID, excludeID *uuid.UUID) (*model.NewsletterSubmission, error)
	createFn     func(ctx context.Context, sub *model.NewsletterSubmission) error
	updateFn     func(ctx context.Context, sub *model.NewsletterSubmission) error
	createCalls  int
	updateCalls  int
	findCalls    int
}

func (m *mockNewsletterStore) List(ctx context.Context, f store.SubmissionFilter) ([]model.NewsletterSubmission, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return []model.NewsletterSubmission{}, 0, nil
}

func (m *mockNewsletterStore) GetByID(ctx context.Context, id uuid.UUID) (*model.NewsletterSubmission, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockNewsletterStore) FindActive(ctx context.Context, email string, orgID, excludeID *uuid.UUID) (*model.NewsletterSubmission, error) {
	m.findCalls++
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, email, orgID, excludeID)
	}
	return nil, store.ErrNotFound
}

func (m *mockNewsletterStore) Create(ctx context.Context, sub *model.NewsletterSubmission) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, sub)
	}
	return nil
}

func (m *mockNewsletterStore) Update(ctx context.Context, sub *model.NewsletterSubmission) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, sub)
	}
	return nil
}

type mockContactStore struct {
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*model.ContactSubmission, error)
	createFn    func(ctx context.Context, sub *model.ContactSubmission) error
	updateFn    func(ctx context.Context, sub *model.ContactSubmission) error
	createCalls int
	updateCalls int
}

func (m *mockContactStore) List(_ context.Context, _ store.SubmissionFilter) ([]model.ContactSubmission, int64, error) {
	return []model.ContactSubmission{}, 0, nil
}

func (m *mockContactStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ContactSubmission, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockContactStore) Create(ctx context.Context, sub *model.ContactSubmission) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, sub)
	}
	return nil
}

func (m *mockContactStore) Update(ctx context.Context, sub *model.ContactSubmission) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, sub)
	}
	return nil
}

type mockLandingPageStore struct {
	listFn       func(ctx context.Context, f store.LandingPageFilter) ([]model.LandingPage, int64, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*model.LandingPage, error)
	findBySlugFn func(ctx context.Context, orgID uuid.UUID, slug string, excludeID *uuid.UUID) (*model.LandingPage, error)
	createFn     func(ctx context.Context, page *model.LandingPage) error
	updateFn     func(ctx context.Context, page *model.LandingPage) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	createCalls  int
	deleteCalls  int
}

func (m *mockLandingPageStore) List(ctx context.Context, f store.LandingPageFilter) ([]model.LandingPage, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return []model.LandingPage{}, 0, nil
}

func (m *mockLandingPageStore) GetByID(ctx context.Context, id uuid.UUID) (*model.LandingPage, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockLandingPageStore) FindBySlug(ctx context.Context, orgID uuid.UUID, slug string, excludeID *uuid.UUID) (*model.LandingPage, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, orgID, slug, excludeID)
	}
	return nil, store.ErrNotFound
}

func (m *mockLandingPageStore) Create(ctx context.Context, page *model.LandingPage) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, page)
	}
	return nil
}

func (m *mockLandingPageStore) Update(ctx context.Context, page *model.LandingPage) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, page)
	}
	return nil
}

func (m *mockLandingPageStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockAPIKeyStore struct {
	listFn                func(ctx context.Context, landingPageID uuid.UUID) ([]model.APIKey, error)
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*model.APIKey, error)
	getByHashFn           func(ctx context.Context, keyHash string) (*model.APIKey, error)
	createFn              func(ctx context.Context, key *model.APIKey) error
	updateFn              func(ctx context.Context, key *model.APIKey) error
	deleteFn              func(ctx context.Context, id uuid.UUID) error
	deleteByLandingPageFn func(ctx context.Context, landingPageID uuid.UUID) error
	touchCalls            int
	deleteByPageCalls     int
}

func (m *mockAPIKeyStore) ListByLandingPage(ctx context.Context, landingPageID uuid.UUID) ([]model.APIKey, error) {
	if m.listFn != nil {
		return m.listFn(ctx, landingPageID)
	}
	return []model.APIKey{}, nil
}

func (m *mockAPIKeyStore) GetByID(ctx context.Context, id uuid.UUID) (*model.APIKey, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockAPIKeyStore) GetByHash(ctx context.Context, keyHash string) (*model.APIKey, error) {
	if m.getByHashFn != nil {
		return m.getByHashFn(ctx, keyHash)
	}
	return nil, store.ErrNotFound
}

func (m *mockAPIKeyStore) Create(ctx context.Context, key *model.APIKey) error {
	if m.createFn != nil {
		return m.createFn(ctx, key)
	}
	return nil
}

func (m *mockAPIKeyStore) Update(ctx context.Context, key *model.APIKey) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, key)
	}
	return nil
}

func (m *mockAPIKeyStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockAPIKeyStore) DeleteByLandingPage(ctx context.Context, landingPageID uuid.UUID) error {
	m.deleteByPageCalls++
	if m.deleteByLandingPageFn != nil {
		return m.deleteByLandingPageFn(ctx, landingPageID)
	}
	return nil
}

func (m *mockAPIKeyStore) TouchLastUsed(_ context.Context, _ uuid.UUID, _ time.Time) error {
	m.touchCalls++
	return nil
}

type mockSubmissionStore struct {
	countByTypeFn func(ctx context.Context, landingPageID uuid.UUID) (map[model.SubmissionType]int64, error)
	listRecentFn  func(ctx context.Context, landingPageID uuid.UUID, limit int) ([]model.LandingPageSubmission, error)
	created       []model.LandingPageSubmission
}

func (m *mockSubmissionStore) Create(_ context.Context, sub *model.LandingPageSubmission) error {
	m.created = append(m.created, *sub)
	return nil
}

func (m *mockSubmissionStore) CountByType(ctx context.Context, landingPageID uuid.UUID) (map[model.SubmissionType]int64, error) {
	if m.countByTypeFn != nil {
		return m.countByTypeFn(ctx, landingPageID)
	}
	return map[model.SubmissionType]int64{}, nil
}

func (m *mockSubmissionStore) ListRecent(ctx context.Context, landingPageID uuid.UUID, limit int) ([]model.LandingPageSubmission, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, landingPageID, limit)
	}
	return []model.LandingPageSubmission{}, nil
}

type mockSessionStore struct {
	getValidFn  func(ctx context.Context, id int64) (*model.Session, error)
	createFn    func(ctx context.Context, session *model.Session) error
	deleteCalls int
}

func (m *mockSessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, _ int64) error {
	m.deleteCalls++
	return nil
}

type mockIdentityProvider struct {
	createUserFn     func(ctx context.Context, params identity.CreateUserParams) (*identity.User, error)
	sendInvitationFn func(ctx context.Context, email string, role model.AccountRole) error
	updateUserFn     func(ctx context.Context, params identity.UpdateUserParams) error
	setRoleFn        func(ctx context.Context, userID string, role model.AccountRole) error
	getUserFn        func(ctx context.Context, userID string) (*identity.User, error)
	deleteUserFn     func(ctx context.Context, userID string) error
	authenticateFn   func(ctx context.Context, code string) (*identity.User, error)

	mu              sync.Mutex
	createUserCalls int
	inviteCalls     int
	updateUserCalls int
	deleteUserCalls int
	getUserCalls    int
}

func (m *mockIdentityProvider) CreateUser(ctx context.Context, params identity.CreateUserParams) (*identity.User, error) {
	m.createUserCalls++
	if m.createUserFn != nil {
		return m.createUserFn(ctx, params)
	}
	return &identity.User{ID: "user_01", Email: params.Email}, nil
}

func (m *mockIdentityProvider) SendInvitation(ctx context.Context, email string, role model.AccountRole) error {
	m.inviteCalls++
	if m.sendInvitationFn != nil {
		return m.sendInvitationFn(ctx, email, role)
	}
	return nil
}

func (m *mockIdentityProvider) UpdateUser(ctx context.Context, params identity.UpdateUserParams) error {
	m.updateUserCalls++
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, params)
	}
	return nil
}

func (m *mockIdentityProvider) SetRole(ctx context.Context, userID string, role model.AccountRole) error {
	if m.setRoleFn != nil {
		return m.setRoleFn(ctx, userID, role)
	}
	return nil
}

// GetUser is called concurrently by the last-login fan-out.
func (m *mockIdentityProvider) GetUser(ctx context.Context, userID string) (*identity.User, error) {
	m.mu.Lock()
	m.getUserCalls++
	m.mu.Unlock()
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return &identity.User{ID: userID}, nil
}

func (m *mockIdentityProvider) DeleteUser(ctx context.Context, userID string) error {
	m.deleteUserCalls++
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

func (m *mockIdentityProvider) AuthorizationURL(state string) (string, error) {
	return "https://auth.example.com/authorize?state=" + state, nil
}

func (m *mockIdentityProvider) AuthenticateWithCode(ctx context.Context, code string) (*identity.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, code)
	}
	return nil, identity.ErrInvalidCode
}

type mockRecorder struct {
	entries []audit.Entry
}

func (m *mockRecorder) Record(_ context.Context, e audit.Entry) {
	m.entries = append(m.entries, e)
}

func (m *mockRecorder) last() audit.Entry {
	if len(m.entries) == 0 {
		return audit.Entry{}
	}
	return m.entries[len(m.entries)-1]
}

type mockStoreProvider struct {
	pages *mockLandingPageStore
	keys  *mockAPIKeyStore
}

func (m *mockStoreProvider) LandingPages() store.LandingPageStore {
	return m.pages
}

func (m *mockStoreProvider) APIKeys() store.APIKeyStore {
	return m.keys
}

type mockTxRunner struct {
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
	calls    int
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(nil)
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func staffActor() model.Principal {
	return model.Principal{ID: uuid.MustParse("11111111-1111-4111-8111-111111111111"), Email: "staff@example.com", Role: model.AccountRoleStaff}
}
