// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/restdata"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func (api *restAPI) Register(ctx *context, in interface{}) (interface{}, error) {
	req := in.(restdata.RegisterRequest)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), api.BcryptCost)
	if err != nil {
		return nil, err
	}
	user, err := api.Store.AddUser(req.Email, hash, req.Role)
	if err != nil {
		return nil, err
	}

	api.Log.WithFields(logrus.Fields{
		"user": user.ID,
		"role": user.Role,
	}).Info("user registered")
	return restdata.RegisterResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (api *restAPI) Login(ctx *context, in interface{}) (interface{}, error) {
	req := in.(restdata.LoginRequest)

	user, err := api.Store.User(req.Email)
	if err != nil {
		return nil, err
	}
	err = bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password))
	if err != nil {
		return nil, access.ErrInvalidCredentials
	}
	tok, err := api.Issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	return restdata.LoginResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		Token: tok,
	}, nil
}
