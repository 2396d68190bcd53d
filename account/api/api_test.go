package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/andrebq/talebox/account"
	"github.com/julienschmidt/httprouter"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

func authHandler() http.Handler {
	router := httprouter.New()
	RegisterRoutes(context.Background(), router, account.NewStore(), account.NewTokenIssuer([]byte("test-secret"), 0))
	return router
}

func TestRegisterThenLogin(t *testing.T) {
	handler := authHandler()

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"email":"a@x.com","password":"pw1"}`).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"ok":true}`).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		JSON(`{"email":"a@x.com","password":"pw1"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present(`$.token`)).
		End()
}

func TestRegisterDuplicate(t *testing.T) {
	handler := authHandler()

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"email":"a@x.com","password":"pw1"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"email":"a@x.com","password":"pw2"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.code`, "duplicate_email")).
		End()
}

func TestLoginFailures(t *testing.T) {
	handler := authHandler()

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"email":"a@x.com","password":"pw1"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		JSON(`{"email":"missing@x.com","password":"pw1"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.code`, "user_not_found")).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		JSON(`{"email":"a@x.com","password":"wrong"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.code`, "invalid_password")).
		End()
}

func TestRegisterRequiresCredentials(t *testing.T) {
	apitest.New().
		Handler(authHandler()).
		Post("/api/auth/register").
		JSON(`{"email":"a@x.com"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.code`, "invalid_request")).
		End()
}
