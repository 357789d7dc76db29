package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/http/dto"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/service"
)

type AccountHandler struct {
	accounts service.AccountService
}

func NewAccountHandler(accounts service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) List(c *gin.Context) {
	var q schema.AccountQuery
	if err := bindQuery(c, &q); err != nil {
		respondError(c, err)
		return
	}

	page, err := h.accounts.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserList(page))
}

func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accounts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) Create(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.CreateAccountInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) Update(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.UpdateAccountInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}
	in.ID = c.Param("id")

	account, err := h.accounts.Update(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}
