package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/service"
	"basegraph.app/backoffice/internal/store"
)

var _ = Describe("LandingPageService", func() {
	var (
		ctx      context.Context
		pages    *mockLandingPageStore
		keys     *mockAPIKeyStore
		orgs     *mockOrganizationStore
		txRunner *mockTxRunner
		recorder *mockRecorder
		svc      service.LandingPageService
		actor    model.Principal
		orgID    uuid.UUID
	)

	BeforeEach(func() {
		ctx = context.Background()
		pages = &mockLandingPageStore{}
		keys = &mockAPIKeyStore{}
		orgs = &mockOrganizationStore{}
		recorder = &mockRecorder{}
		actor = staffActor()
		orgID = uuid.New()
		txStores := &mockStoreProvider{pages: pages, keys: keys}
		txRunner = &mockTxRunner{
			withTxFn: func(_ context.Context, fn func(service.StoreProvider) error) error {
				return fn(txStores)
			},
		}
		svc = service.NewLandingPageService(pages, orgs, txRunner, service.Sinks{Audit: recorder})
	})

	Describe("Create", func() {
		It("requires an existing organization", func() {
			orgs.getByIDFn = func(context.Context, uuid.UUID) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, actor, schema.CreateLandingPageInput{
				OrganizationID:    orgID.String(),
				LandingPageFields: schema.LandingPageFields{Name: "Spring launch", Slug: "spring"},
			})

			Expect(apperr.Is(err, apperr.KindNotFound)).To(BeTrue())
			Expect(pages.createCalls).To(BeZero())
		})

		It("rejects a slug already used in the organization", func() {
			pages.findBySlugFn = func(_ context.Context, org uuid.UUID, slug string, _ *uuid.UUID) (*model.LandingPage, error) {
				Expect(org).To(Equal(orgID))
				return &model.LandingPage{ID: uuid.New(), Slug: slug}, nil
			}

			_, err := svc.Create(ctx, actor, schema.CreateLandingPageInput{
				OrganizationID:    orgID.String(),
				LandingPageFields: schema.LandingPageFields{Name: "Spring launch", Slug: "spring"},
			})

			Expect(apperr.Is(err, apperr.KindConflict)).To(BeTrue())
			var appErr *apperr.Error
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.FieldErrors).To(HaveKey("slug"))
		})

		It("creates an active page by default", func() {
			lp, err := svc.Create(ctx, actor, schema.CreateLandingPageInput{
				OrganizationID:    orgID.String(),
				LandingPageFields: schema.LandingPageFields{Name: "Spring launch", Slug: "spring", Domain: strPtr("spring.example.com")},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(lp.OrganizationID).To(Equal(orgID))
			Expect(lp.IsActive).To(BeTrue())
			Expect(recorder.last().Details).To(HaveKeyWithValue("slug", "spring"))
		})
	})

	Describe("Delete", func() {
		It("removes the API keys and the page in one transaction", func() {
			id := uuid.New()

			Expect(svc.Delete(ctx, actor, id.String())).To(Succeed())
			Expect(txRunner.calls).To(Equal(1))
			Expect(keys.deleteByPageCalls).To(Equal(1))
			Expect(pages.deleteCalls).To(Equal(1))
			Expect(recorder.last().Action).To(Equal(model.AuditActionDelete))
		})

		It("stops when the keys cannot be removed", func() {
			keys.deleteByLandingPageFn = func(context.Context, uuid.UUID) error {
				return errors.New("deadlock detected")
			}

			err := svc.Delete(ctx, actor, uuid.NewString())

			Expect(apperr.Is(err, apperr.KindRepository)).To(BeTrue())
			Expect(pages.deleteCalls).To(BeZero())
			Expect(recorder.entries).To(BeEmpty())
		})

		It("returns not found for an unknown page", func() {
			pages.deleteFn = func(context.Context, uuid.UUID) error {
				return store.ErrNotFound
			}

			err := svc.Delete(ctx, actor, uuid.NewString())

			Expect(apperr.Is(err, apperr.KindNotFound)).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("scopes the listing to the organization", func() {
			var filter store.LandingPageFilter
			pages.listFn = func(_ context.Context, f store.LandingPageFilter) ([]model.LandingPage, int64, error) {
				filter = f
				return []model.LandingPage{}, 0, nil
			}

			_, err := svc.List(ctx, orgID.String(), schema.LandingPageQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(filter.OrganizationID).To(Equal(orgID))
		})
	})
})
