package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/http/handler"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
)

var _ = Describe("AccountHandler", func() {
	var (
		router *gin.Engine
		svc    *mockAccountService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockAccountService{}
		h := handler.NewAccountHandler(svc)
		users := router.Group("/users", withActor)
		users.GET("", h.List)
		users.POST("", h.Create)
		users.PATCH("/:id", h.Update)
	})

	send := func(method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp map[string]any
		if w.Body.Len() > 0 {
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		}
		return w, resp
	}

	It("wraps the page in the list envelope", func() {
		svc.listFn = func(_ context.Context, q schema.AccountQuery) (*model.Page[model.Account], error) {
			Expect(q.Role).To(HaveValue(Equal(model.AccountRoleStaff)))
			Expect(q.Page).To(Equal(2))
			Expect(q.PageSize).To(Equal(10))
			return &model.Page[model.Account]{
				Items:    []model.Account{{ID: uuid.New(), Role: model.AccountRoleStaff}},
				Total:    11,
				Page:     2,
				PageSize: 10,
			}, nil
		}

		w, resp := send(http.MethodGet, "/users?role=staff&status=active&page=2&pageSize=10", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["users"]).To(HaveLen(1))
		Expect(resp["total"]).To(BeEquivalentTo(11))
		Expect(resp["page"]).To(BeEquivalentTo(2))
		Expect(resp["pageSize"]).To(BeEquivalentTo(10))
	})

	It("rejects a non-numeric page", func() {
		w, resp := send(http.MethodGet, "/users?page=abc", "")

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(resp["error"]).To(Equal("Validation failed"))
	})

	It("returns 201 with the created account", func() {
		svc.createFn = func(_ context.Context, actor model.Principal, in schema.CreateAccountInput) (*model.Account, error) {
			Expect(actor.ID).To(Equal(testActor.ID))
			return &model.Account{ID: uuid.New(), Email: in.Email}, nil
		}

		w, resp := send(http.MethodPost, "/users", `{"email":"ada@example.com","fullName":"Ada"}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(resp["email"]).To(Equal("ada@example.com"))
	})

	It("returns 400 on malformed JSON", func() {
		w, resp := send(http.MethodPost, "/users", `{`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(resp["error"]).To(Equal("Invalid JSON body"))
	})

	It("returns 400 on an empty body", func() {
		w, _ := send(http.MethodPost, "/users", ``)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 422 when a field has the wrong type", func() {
		w, resp := send(http.MethodPost, "/users", `{"email":42}`)

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(resp["fieldErrors"]).To(HaveKey("email"))
	})

	It("takes the id from the path", func() {
		id := uuid.NewString()
		svc.updateFn = func(_ context.Context, _ model.Principal, in schema.UpdateAccountInput) (*model.Account, error) {
			Expect(in.ID).To(Equal(id))
			return &model.Account{}, nil
		}

		w, _ := send(http.MethodPatch, "/users/"+id, `{"id":"`+uuid.NewString()+`"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("serializes the destructive change gate", func() {
		svc.updateFn = func(context.Context, model.Principal, schema.UpdateAccountInput) (*model.Account, error) {
			return nil, apperr.DestructiveChange("Confirm destructive changes before continuing.", apperr.FieldErrors{
				"confirmDestructive": {"Please acknowledge this change before submitting."},
			})
		}

		w, resp := send(http.MethodPatch, "/users/"+uuid.NewString(), `{"status":"disabled"}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(resp["error"]).To(Equal("Confirm destructive changes before continuing."))
		Expect(resp["details"]).To(HaveKeyWithValue("fieldErrors", HaveKey("confirmDestructive")))
	})

	It("hides unexpected errors behind a generic 500", func() {
		svc.listFn = func(context.Context, schema.AccountQuery) (*model.Page[model.Account], error) {
			return nil, context.DeadlineExceeded
		}

		w, resp := send(http.MethodGet, "/users", "")

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(resp["error"]).To(Equal("Unexpected server error"))
	})
})
