package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/http/middleware"
	"basegraph.app/backoffice/internal/model"
)

type stubSessions struct {
	validateFn func(ctx context.Context, sessionID int64) (*model.Account, error)
}

func (s *stubSessions) ValidateSession(ctx context.Context, sessionID int64) (*model.Account, error) {
	return s.validateFn(ctx, sessionID)
}

type stubKeys struct {
	validateFn func(ctx context.Context, rawKey string) (*model.APIKeyContext, error)
}

func (s *stubKeys) Validate(ctx context.Context, rawKey string) (*model.APIKeyContext, error) {
	return s.validateFn(ctx, rawKey)
}

var _ = Describe("Auth middleware", func() {
	var (
		router   *gin.Engine
		sessions *stubSessions
		keys     *stubKeys
		account  *model.Account
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		account = &model.Account{ID: uuid.New(), Email: "staff@example.com", Role: model.AccountRoleStaff}
		sessions = &stubSessions{validateFn: func(_ context.Context, sessionID int64) (*model.Account, error) {
			if sessionID != 42 {
				return nil, apperr.Unauthorized("Session expired")
			}
			return account, nil
		}}
		keys = &stubKeys{validateFn: func(_ context.Context, rawKey string) (*model.APIKeyContext, error) {
			if rawKey == "" {
				return nil, apperr.Unauthorized("Missing API key")
			}
			if rawKey != "lp_good" {
				return nil, apperr.Unauthorized("Invalid API key")
			}
			return &model.APIKeyContext{KeyID: uuid.New(), Slug: "spring"}, nil
		}}

		staff := router.Group("/admin", middleware.RequireSession(sessions), middleware.RequireRole(model.AccountRoleStaff))
		staff.GET("/whoami", func(c *gin.Context) {
			p, _ := middleware.Principal(c)
			c.JSON(http.StatusOK, gin.H{"email": p.Email})
		})
		public := router.Group("/public", middleware.APIKeyAuth(keys))
		public.GET("/slug", func(c *gin.Context) {
			k, _ := middleware.APIKey(c)
			c.JSON(http.StatusOK, gin.H{"slug": k.Slug})
		})
	})

	serve := func(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		var body map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return w, body
	}

	It("accepts the session header", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.Header.Set(middleware.SessionIDHeader, "42")

		w, body := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body["email"]).To(Equal("staff@example.com"))
	})

	It("falls back to the session cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "42"})

		w, _ := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("rejects a request without a session", func() {
		w, body := serve(httptest.NewRequest(http.MethodGet, "/admin/whoami", nil))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(body["error"]).To(Equal("Unauthorized"))
	})

	DescribeTable("rejects a malformed session id",
		func(raw string) {
			req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
			req.Header.Set(middleware.SessionIDHeader, raw)

			w, body := serve(req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(body["error"]).To(Equal("Unauthorized"))
		},
		Entry("not a number", "abc"),
		Entry("negative", "-42"),
		Entry("zero", "0"),
	)

	It("rejects an expired session", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.Header.Set(middleware.SessionIDHeader, "7")

		w, body := serve(req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(body["error"]).To(Equal("Session expired"))
	})

	It("forbids non-staff accounts", func() {
		account.Role = model.AccountRoleUser
		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.Header.Set(middleware.SessionIDHeader, "42")

		w, _ := serve(req)

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("resolves a bearer key", func() {
		req := httptest.NewRequest(http.MethodGet, "/public/slug", nil)
		req.Header.Set("Authorization", "Bearer lp_good")

		w, body := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body["slug"]).To(Equal("spring"))
	})

	It("rejects a missing key", func() {
		w, body := serve(httptest.NewRequest(http.MethodGet, "/public/slug", nil))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(body["error"]).To(Equal("Missing API key"))
	})
})

var _ = Describe("Recovery", func() {
	It("turns a panic into the generic 500 body", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/boom", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("Unexpected server error"))
	})
})

var _ = Describe("RequestID", func() {
	It("echoes the caller's id and assigns one otherwise", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.RequestID())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-123"))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(w.Header().Get(middleware.RequestIDHeader)).NotTo(BeEmpty())
	})
})
