// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"net/url"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/token"
)

// context holds all of the information that can be extracted from the
// request URL.
type context struct {
	QueryParams url.Values
}

// Context builds the context object for a request.
func (api *restAPI) Context(req *http.Request) (*context, error) {
	return &context{QueryParams: req.URL.Query()}, nil
}

// authorize checks a token from a request, returning its claims.
func (api *restAPI) authorize(tokenString string) (token.Claims, error) {
	return api.Issuer.Verify(tokenString)
}

// authorizeAdmin checks a token and also requires it to belong to an
// administrator.
func (api *restAPI) authorizeAdmin(tokenString string) (token.Claims, error) {
	claims, err := api.authorize(tokenString)
	if err == nil && claims.Role != access.RoleAdmin {
		err = access.ErrPermissionDenied
	}
	return claims, err
}
