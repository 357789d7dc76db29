package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"basegraph.app/backoffice/internal/http/middleware"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
)

type mockAccountService struct {
	listFn   func(ctx context.Context, q schema.AccountQuery) (*model.Page[model.Account], error)
	getFn    func(ctx context.Context, id string) (*model.Account, error)
	createFn func(ctx context.Context, actor model.Principal, in schema.CreateAccountInput) (*model.Account, error)
	updateFn func(ctx context.Context, actor model.Principal, in schema.UpdateAccountInput) (*model.Account, error)
}

func (m *mockAccountService) List(ctx context.Context, q schema.AccountQuery) (*model.Page[model.Account], error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return &model.Page[model.Account]{}, nil
}

func (m *mockAccountService) Get(ctx context.Context, id string) (*model.Account, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Account{}, nil
}

func (m *mockAccountService) Create(ctx context.Context, actor model.Principal, in schema.CreateAccountInput) (*model.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, in)
	}
	return &model.Account{}, nil
}

func (m *mockAccountService) Update(ctx context.Context, actor model.Principal, in schema.UpdateAccountInput) (*model.Account, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, actor, in)
	}
	return &model.Account{}, nil
}

type mockOrganizationService struct {
	createFn func(ctx context.Context, actor model.Principal, in schema.CreateOrganizationInput) (*model.Organization, error)
	deleteFn func(ctx context.Context, actor model.Principal, id string) error
}

func (m *mockOrganizationService) List(context.Context, schema.OrganizationQuery) (*model.Page[model.Organization], error) {
	return &model.Page[model.Organization]{}, nil
}

func (m *mockOrganizationService) Get(_ context.Context, id string) (*model.Organization, error) {
	return &model.Organization{ID: uuid.MustParse(id)}, nil
}

func (m *mockOrganizationService) Create(ctx context.Context, actor model.Principal, in schema.CreateOrganizationInput) (*model.Organization, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, in)
	}
	return &model.Organization{}, nil
}

func (m *mockOrganizationService) Update(context.Context, model.Principal, schema.UpdateOrganizationInput) (*model.Organization, error) {
	return &model.Organization{}, nil
}

func (m *mockOrganizationService) Delete(ctx context.Context, actor model.Principal, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actor, id)
	}
	return nil
}

type mockNewsletterService struct {
	createFn func(ctx context.Context, actor model.Principal, in schema.CreateNewsletterInput) (*model.NewsletterSubmission, error)
}

func (m *mockNewsletterService) List(context.Context, schema.NewsletterQuery) (*model.Page[model.NewsletterSubmission], error) {
	return &model.Page[model.NewsletterSubmission]{}, nil
}

func (m *mockNewsletterService) Create(ctx context.Context, actor model.Principal, in schema.CreateNewsletterInput) (*model.NewsletterSubmission, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, in)
	}
	return &model.NewsletterSubmission{}, nil
}

func (m *mockNewsletterService) Update(context.Context, model.Principal, schema.UpdateNewsletterInput) (*model.NewsletterSubmission, error) {
	return &model.NewsletterSubmission{}, nil
}

type mockAPIKeyService struct {
	createFn func(ctx context.Context, actor model.Principal, in schema.CreateAPIKeyInput) (*model.APIKey, string, error)
}

func (m *mockAPIKeyService) List(context.Context, string) ([]model.APIKey, error) {
	return nil, nil
}

func (m *mockAPIKeyService) Create(ctx context.Context, actor model.Principal, in schema.CreateAPIKeyInput) (*model.APIKey, string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, in)
	}
	return &model.APIKey{}, "", nil
}

func (m *mockAPIKeyService) Update(context.Context, model.Principal, schema.UpdateAPIKeyInput) (*model.APIKey, error) {
	return &model.APIKey{}, nil
}

func (m *mockAPIKeyService) Delete(context.Context, model.Principal, string) error {
	return nil
}

func (m *mockAPIKeyService) Validate(context.Context, string) (*model.APIKeyContext, error) {
	return &model.APIKeyContext{}, nil
}

type mockPublicService struct {
	analyticsFn func(ctx context.Context, key model.APIKeyContext, slug string) (*model.SubmissionAnalytics, error)
}

func (m *mockPublicService) SubscribeNewsletter(context.Context, model.APIKeyContext, string, schema.PublicNewsletterInput) (*model.NewsletterSubmission, error) {
	return &model.NewsletterSubmission{}, nil
}

func (m *mockPublicService) SubmitContact(context.Context, model.APIKeyContext, string, schema.PublicContactInput) (*model.ContactSubmission, error) {
	return &model.ContactSubmission{}, nil
}

func (m *mockPublicService) Submit(context.Context, model.APIKeyContext, string, schema.PublicCustomSubmissionInput) (*model.LandingPageSubmission, error) {
	return &model.LandingPageSubmission{}, nil
}

func (m *mockPublicService) Analytics(ctx context.Context, key model.APIKeyContext, slug string) (*model.SubmissionAnalytics, error) {
	if m.analyticsFn != nil {
		return m.analyticsFn(ctx, key, slug)
	}
	return &model.SubmissionAnalytics{}, nil
}

type mockAuthService struct {
	handleCallbackFn  func(ctx context.Context, code string) (*model.Account, *model.Session, error)
	validateSessionFn func(ctx context.Context, sessionID int64) (*model.Account, error)
	logoutCalls       int
}

func (m *mockAuthService) GetAuthorizationURL(state string) (string, error) {
	return "https://auth.example.com/authorize?state=" + state, nil
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.Account, *model.Session, error) {
	return m.handleCallbackFn(ctx, code)
}

func (m *mockAuthService) ValidateSession(ctx context.Context, sessionID int64) (*model.Account, error) {
	return m.validateSessionFn(ctx, sessionID)
}

func (m *mockAuthService) Logout(context.Context, int64) error {
	m.logoutCalls++
	return nil
}

var testActor = model.Principal{
	ID:    uuid.MustParse("11111111-1111-4111-8111-111111111111"),
	Email: "staff@example.com",
	Role:  model.AccountRoleStaff,
}

// withActor stands in for the session middleware.
func withActor(c *gin.Context) {
	middleware.SetPrincipal(c, testActor)
	c.Next()
}

func withKey(key model.APIKeyContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetAPIKey(c, key)
		c.Next()
	}
}
