// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/restdata"
	"github.com/sirupsen/logrus"
)

func computerResponse(computer access.Computer) restdata.ComputerResponse {
	return restdata.ComputerResponse{
		ID:     computer.ID,
		OS:     computer.OS,
		CPU:    computer.CPU,
		RAM:    computer.RAM,
		Status: computer.Available,
		SSH:    computer.SSH,
	}
}

// randomSSH makes up a connection string for a computer added without
// one.
func randomSSH() string {
	return fmt.Sprintf("root@%d.%d.%d.%d",
		rand.Intn(256), rand.Intn(256), rand.Intn(256), rand.Intn(256))
}

func (api *restAPI) GetAll(ctx *context) (interface{}, error) {
	_, err := api.authorize(ctx.QueryParams.Get("token"))
	if err != nil {
		return nil, err
	}
	computers, err := api.Store.Computers()
	if err != nil {
		return nil, err
	}
	resp := restdata.ComputerList{
		Computers: make([]restdata.ComputerResponse, len(computers)),
	}
	for i, computer := range computers {
		resp.Computers[i] = computerResponse(computer)
	}
	return resp, nil
}

func (api *restAPI) GetComputer(ctx *context) (interface{}, error) {
	_, err := api.authorize(ctx.QueryParams.Get("token"))
	if err != nil {
		return nil, err
	}
	id := ctx.QueryParams.Get("id")
	if id == "" {
		return nil, restdata.ErrBadRequest{Err: errors.New("id is required")}
	}
	computer, err := api.Store.Computer(id)
	if err != nil {
		return nil, err
	}
	return computerResponse(computer), nil
}

func (api *restAPI) ReserveComputer(ctx *context, in interface{}) (interface{}, error) {
	req := in.(restdata.ComputerRequest)
	claims, err := api.authorize(req.Token)
	if err != nil {
		return nil, err
	}
	err = api.Store.Reserve(req.ID)
	if err != nil {
		return nil, err
	}
	api.Log.WithFields(logrus.Fields{
		"computer": req.ID,
		"user":     claims.UID,
	}).Info("computer reserved")
	api.observe()
	return restdata.ReservationResponse{ID: req.ID, Reserved: true}, nil
}

func (api *restAPI) RelieveComputer(ctx *context, in interface{}) (interface{}, error) {
	req := in.(restdata.ComputerRequest)
	claims, err := api.authorize(req.Token)
	if err != nil {
		return nil, err
	}
	err = api.Store.Relieve(req.ID)
	if err != nil {
		return nil, err
	}
	api.Log.WithFields(logrus.Fields{
		"computer": req.ID,
		"user":     claims.UID,
	}).Info("computer relieved")
	api.observe()
	return restdata.ReservationResponse{ID: req.ID, Reserved: false}, nil
}

func (api *restAPI) AddComputer(ctx *context, in interface{}) (interface{}, error) {
	req := in.(restdata.AddComputerRequest)
	_, err := api.authorizeAdmin(req.Token)
	if err != nil {
		return nil, err
	}
	spec := access.ComputerSpec{
		OS:  req.OS,
		CPU: req.CPU,
		RAM: req.RAM,
		SSH: req.SSH,
	}
	if spec.SSH == "" {
		spec.SSH = randomSSH()
	}
	computer, err := api.Store.AddComputer(spec)
	if err != nil {
		return nil, err
	}
	api.observe()
	return computerResponse(computer), nil
}
