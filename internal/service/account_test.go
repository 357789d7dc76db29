package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/identity"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/service"
	"basegraph.app/backoffice/internal/store"
)

var _ = Describe("AccountService", func() {
	var (
		ctx      context.Context
		accounts *mockAccountStore
		provider *mockIdentityProvider
		recorder *mockRecorder
		svc      service.AccountService
		actor    model.Principal
	)

	BeforeEach(func() {
		ctx = context.Background()
		accounts = &mockAccountStore{}
		provider = &mockIdentityProvider{}
		recorder = &mockRecorder{}
		actor = staffActor()
		svc = service.NewAccountService(accounts, provider, 4, service.Sinks{Audit: recorder})
	})

	Describe("Create", func() {
		var in schema.CreateAccountInput

		BeforeEach(func() {
			in = schema.CreateAccountInput{AccountFields: schema.AccountFields{
				FullName: "  Ada Lovelace ",
				Email:    " Ada@Example.COM ",
				Role:     model.AccountRoleUser,
				Status:   model.AccountStatusActive,
				Password: strPtr("Analytical1Engine"),
			}}
		})

		It("normalizes the input and provisions the identity user", func() {
			var params identity.CreateUserParams
			provider.createUserFn = func(_ context.Context, p identity.CreateUserParams) (*identity.User, error) {
				params = p
				return &identity.User{ID: "user_ada", Email: p.Email}, nil
			}

			account, err := svc.Create(ctx, actor, in)

			Expect(err).NotTo(HaveOccurred())
			Expect(account.Email).To(Equal("ada@example.com"))
			Expect(account.FullName).To(Equal("Ada Lovelace"))
			Expect(account.IdentityUserID).To(HaveValue(Equal("user_ada")))
			Expect(account.CreatedBy).To(HaveValue(Equal(actor.ID)))
			Expect(params.EmailVerified).To(BeTrue())
			Expect(accounts.createCalls).To(Equal(1))

			entry := recorder.last()
			Expect(entry.Action).To(Equal(model.AuditActionCreate))
			Expect(entry.ResourceType).To(Equal(model.ResourceTypeUser))
			Expect(entry.ResourceID).To(Equal(account.ID.String()))
			Expect(entry.ActedBy).To(Equal(actor.ID.String()))
			Expect(entry.Details).To(HaveKeyWithValue("sendOnboardingEmail", false))
		})

		It("sends an invitation instead of creating a user when onboarding", func() {
			in.SendOnboardingEmail = true

			account, err := svc.Create(ctx, actor, in)

			Expect(err).NotTo(HaveOccurred())
			Expect(provider.inviteCalls).To(Equal(1))
			Expect(provider.createUserCalls).To(BeZero())
			Expect(account.IdentityUserID).To(BeNil())
			Expect(account.InvitedAt).NotTo(BeNil())
		})

		It("rejects an email already in use", func() {
			accounts.getByEmailFn = func(_ context.Context, email string) (*model.Account, error) {
				Expect(email).To(Equal("ada@example.com"))
				return &model.Account{ID: uuid.New(), Email: email}, nil
			}

			_, err := svc.Create(ctx, actor, in)

			Expect(apperr.Is(err, apperr.KindConflict)).To(BeTrue())
			var appErr *apperr.Error
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.FieldErrors).To(HaveKey("email"))
			Expect(accounts.createCalls).To(BeZero())
			Expect(provider.createUserCalls).To(BeZero())
			Expect(recorder.entries).To(BeEmpty())
		})

		It("requires a password when no onboarding email is sent", func() {
			in.Password = nil

			_, err := svc.Create(ctx, actor, in)

			Expect(apperr.Is(err, apperr.KindValidation)).To(BeTrue())
			Expect(provider.createUserCalls).To(BeZero())
		})

		It("deletes the identity user when the row cannot be written", func() {
			accounts.createFn = func(context.Context, *model.Account) error {
				return errors.New("connection reset")
			}

			_, err := svc.Create(ctx, actor, in)

			Expect(apperr.Is(err, apperr.KindRepository)).To(BeTrue())
			Expect(provider.deleteUserCalls).To(Equal(1))
			Expect(recorder.entries).To(BeEmpty())
		})

		It("maps a unique violation on insert to a conflict", func() {
			accounts.createFn = func(context.Context, *model.Account) error {
				return store.ErrDuplicate
			}

			_, err := svc.Create(ctx, actor, in)

			Expect(apperr.Is(err, apperr.KindConflict)).To(BeTrue())
			Expect(provider.deleteUserCalls).To(Equal(1))
		})
	})

	Describe("Update", func() {
		var (
			existing *model.Account
			in       schema.UpdateAccountInput
		)

		BeforeEach(func() {
			existing = &model.Account{
				ID:             uuid.New(),
				IdentityUserID: strPtr("user_ada"),
				Email:          "ada@example.com",
				FullName:       "Ada Lovelace",
				Role:           model.AccountRoleUser,
				Status:         model.AccountStatusActive,
			}
			accounts.getByIDFn = func(_ context.Context, id uuid.UUID) (*model.Account, error) {
				if id != existing.ID {
					return nil, store.ErrNotFound
				}
				copied := *existing
				return &copied, nil
			}
			in = schema.UpdateAccountInput{
				ID: existing.ID.String(),
				AccountFields: schema.AccountFields{
					FullName: "Ada Lovelace",
					Email:    "ada@example.com",
					Role:     model.AccountRoleUser,
					Status:   model.AccountStatusActive,
				},
			}
		})

		It("rejects an email change without writing", func() {
			in.Email = "ada@elsewhere.com"

			_, err := svc.Update(ctx, actor, in)

			Expect(apperr.Is(err, apperr.KindImmutableField)).To(BeTrue())
			var appErr *apperr.Error
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.FieldErrors).To(HaveKeyWithValue("email", []string{"Email address is immutable."}))
			Expect(accounts.updateCalls).To(BeZero())
			Expect(recorder.entries).To(BeEmpty())
		})

		It("accepts the existing email in a different case", func() {
			in.Email = "ADA@example.com"

			_, err := svc.Update(ctx, actor, in)

			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("gates destructive changes until confirmed",
			func(mutate func(*schema.UpdateAccountInput)) {
				mutate(&in)

				_, err := svc.Update(ctx, actor, in)

				Expect(apperr.Is(err, apperr.KindDestructiveChange)).To(BeTrue())
				var appErr *apperr.Error
				Expect(errors.As(err, &appErr)).To(BeTrue())
				Expect(appErr.FieldErrors).To(HaveKey("confirmDestructive"))
				Expect(accounts.updateCalls).To(BeZero())
				Expect(provider.updateUserCalls).To(BeZero())
			},
			Entry("disabling", func(in *schema.UpdateAccountInput) { in.Status = model.AccountStatusDisabled }),
			Entry("locking", func(in *schema.UpdateAccountInput) { in.IsLocked = true }),
			Entry("requiring a reset", func(in *schema.UpdateAccountInput) { in.PasswordResetRequired = true }),
			Entry("setting a password", func(in *schema.UpdateAccountInput) { in.Password = strPtr("Analytical1Engine") }),
			Entry("an explicit false confirmation", func(in *schema.UpdateAccountInput) {
				in.IsLocked = true
				in.ConfirmDestructive = boolPtr(false)
			}),
		)

		It("disables a confirmed account with the default reason", func() {
			in.Status = model.AccountStatusDisabled
			in.ConfirmDestructive = boolPtr(true)

			account, err := svc.Update(ctx, actor, in)

			Expect(err).NotTo(HaveOccurred())
			Expect(account.Status).To(Equal(model.AccountStatusDisabled))
			Expect(account.DisabledReason).To(HaveValue(Equal(model.DefaultDisabledReason)))
			Expect(accounts.updateCalls).To(Equal(1))

			entry := recorder.last()
			Expect(entry.Action).To(Equal(model.AuditActionDisable))
			Expect(entry.Details).To(HaveKeyWithValue("destructiveAction", "disable"))
			Expect(entry.Details).To(HaveKeyWithValue("statusChanged", true))
		})

		It("prefers disable over lock when both happen", func() {
			in.Status = model.AccountStatusDisabled
			in.IsLocked = true
			in.ConfirmDestructive = boolPtr(true)

			account, err := svc.Update(ctx, actor, in)

			Expect(err).NotTo(HaveOccurred())
			Expect(account.LockedAt).NotTo(BeNil())
			Expect(recorder.last().Action).To(Equal(model.AuditActionDisable))
		})

		It("unlocks without confirmation and clears the lock time", func() {
			lockedAt := time.Now().Add(-time.Hour)
			existing.IsLocked = true
			existing.LockedAt = &lockedAt

			account, err := svc.Update(ctx, actor, in)

			Expect(err).NotTo(HaveOccurred())
			Expect(account.IsLocked).To(BeFalse())
			Expect(account.LockedAt).To(BeNil())
			Expect(recorder.last().Action).To(Equal(model.AuditActionUnlock))
		})

		It("clears the disabled reason on reactivation", func() {
			existing.Status = model.AccountStatusDisabled
			existing.DisabledReason = strPtr("left the company")

			account, err := svc.Update(ctx, actor, in)

			Expect(err).NotTo(HaveOccurred())
			Expect(account.DisabledReason).To(BeNil())
			Expect(recorder.last().Action).To(Equal(model.AuditActionUpdate))
			Expect(recorder.last().Details).To(HaveKeyWithValue("destructiveAction", BeNil()))
		})

		It("rejects a password for an account that never signed in", func() {
			existing.IdentityUserID = nil
			in.Password = strPtr("Analytical1Engine")
			in.ConfirmDestructive = boolPtr(true)

			_, err := svc.Update(ctx, actor, in)

			Expect(apperr.Is(err, apperr.KindConflict)).To(BeTrue())
			Expect(accounts.updateCalls).To(BeZero())
		})

		It("sets the password through the provider", func() {
			in.Password = strPtr("Analytical1Engine")
			in.ConfirmDestructive = boolPtr(true)
			var params identity.UpdateUserParams
			provider.updateUserFn = func(_ context.Context, p identity.UpdateUserParams) error {
				params = p
				return nil
			}

			_, err := svc.Update(ctx, actor, in)

			Expect(err).NotTo(HaveOccurred())
			Expect(params.UserID).To(Equal("user_ada"))
			Expect(params.Password).To(HaveValue(Equal("Analytical1Engine")))
			Expect(params.FullName).To(BeNil())
			Expect(recorder.last().Action).To(Equal(model.AuditActionPasswordReset))
		})

		It("restores the row when the provider rejects the change", func() {
			in.FullName = "Augusta Ada King"
			provider.updateUserFn = func(context.Context, identity.UpdateUserParams) error {
				return errors.New("provider unavailable")
			}

			_, err := svc.Update(ctx, actor, in)

			Expect(apperr.Is(err, apperr.KindRepository)).To(BeTrue())
			Expect(accounts.updateCalls).To(Equal(2))
			Expect(accounts.updated[0].FullName).To(Equal("Augusta Ada King"))
			Expect(accounts.updated[1].FullName).To(Equal("Ada Lovelace"))
			Expect(recorder.entries).To(BeEmpty())
		})

		It("returns not found for an unknown account", func() {
			in.ID = uuid.NewString()

			_, err := svc.Update(ctx, actor, in)

			Expect(apperr.Is(err, apperr.KindNotFound)).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("passes filters through and keeps the unpaged total", func() {
			role := model.AccountRoleStaff
			var filter store.AccountFilter
			accounts.listFn = func(_ context.Context, f store.AccountFilter) ([]model.Account, int64, error) {
				filter = f
				return []model.Account{{ID: uuid.New()}}, 42, nil
			}

			result, err := svc.List(ctx, schema.AccountQuery{
				Pagination: schema.Pagination{Page: 3, PageSize: 1},
				Role:       &role,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(BeEquivalentTo(42))
			Expect(result.Items).To(HaveLen(1))
			Expect(result.Page).To(Equal(3))
			Expect(filter.Role).To(HaveValue(Equal(model.AccountRoleStaff)))
			Expect(filter.SortBy).To(Equal("created_at"))
			Expect(filter.SortDir).To(Equal("desc"))
		})

		It("rejects an unknown sort column", func() {
			_, err := svc.List(ctx, schema.AccountQuery{SortBy: "password"})

			Expect(apperr.Is(err, apperr.KindValidation)).To(BeTrue())
		})

		It("merges provider sign-in times and tolerates failed lookups", func() {
			stored := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			fresh := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
			rows := []model.Account{
				{ID: uuid.New(), IdentityUserID: strPtr("user_fresh"), LastLoginAt: &stored},
				{ID: uuid.New(), IdentityUserID: strPtr("user_broken"), LastLoginAt: &stored},
				{ID: uuid.New(), LastLoginAt: &stored},
			}
			accounts.listFn = func(context.Context, store.AccountFilter) ([]model.Account, int64, error) {
				return rows, int64(len(rows)), nil
			}
			provider.getUserFn = func(_ context.Context, userID string) (*identity.User, error) {
				if userID == "user_broken" {
					return nil, errors.New("rate limited")
				}
				return &identity.User{ID: userID, LastSignInAt: &fresh}, nil
			}

			result, err := svc.List(ctx, schema.AccountQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(provider.getUserCalls).To(Equal(2))
			Expect(result.Items[0].LastLoginAt).To(HaveValue(Equal(fresh)))
			Expect(result.Items[1].LastLoginAt).To(HaveValue(Equal(stored)))
			Expect(result.Items[2].LastLoginAt).To(HaveValue(Equal(stored)))
		})
	})

	Describe("Get", func() {
		It("treats a malformed id as not found", func() {
			_, err := svc.Get(ctx, "not-a-uuid")

			Expect(apperr.Is(err, apperr.KindNotFound)).To(BeTrue())
		})
	})
})
