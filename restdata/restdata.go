// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines the data structures passed between the
// restclient and restserver packages.  These are all JSON objects,
// sent as application/json.
//
// API Usage
//
// The API is a fixed set of paths under /api, rooted at the backend's
// base URL (by default http://localhost:5000):
//
//     POST /api/auth/register   RegisterRequest   -> RegisterResponse
//     POST /api/auth/login      LoginRequest      -> LoginResponse
//     GET  /api/get_all?token=                    -> ComputerList
//     GET  /api/get_computer?id=&token=           -> ComputerResponse
//     POST /api/reserve_computer ComputerRequest  -> ReservationResponse
//     POST /api/relieve_computer ComputerRequest  -> ReservationResponse
//     POST /api/add_computer    AddComputerRequest -> ComputerResponse
//
// The access token is always a plain "token" body field or query
// parameter.  It is never sent in an Authorization: header.
//
// Success Markers
//
// Clients decide whether a response is successful by looking for a
// single field: "userId" for registration, "token" for login, "ssh"
// for a computer, and "reserved" for reserve and relieve.  The value
// of the field does not matter.  A relieve response has "reserved":
// false, and that is a success.
//
// Errors
//
// Failures are returned with a non-2xx HTTP status and an
// ErrorResponse body, {"status": "Error", "error": "message"}.  The
// messages of the well-known access errors are preserved exactly so
// that clients can turn them back into the same error values.
package restdata

// MarkerUserID, and the other Marker constants, name the fields whose
// presence marks a successful response.
const (
	MarkerUserID    = "userId"
	MarkerToken     = "token"
	MarkerComputers = "computers"
	MarkerSSH       = "ssh"
	MarkerReserved  = "reserved"
)

// DataDict is an arbitrary decoded JSON object.
type DataDict map[string]interface{}

// Has returns true if key is present in the dictionary, regardless of
// its value.
func (d DataDict) Has(key string) bool {
	_, present := d[key]
	return present
}

// RegisterRequest is posted to create a new account.
type RegisterRequest struct {
	Email    string `json:"userEmail" validate:"required,email"`
	Password string `json:"userPassword" validate:"required"`
	Role     string `json:"userRole" validate:"required,oneof=admin user"`
}

// RegisterResponse acknowledges a new account.
type RegisterResponse struct {
	ID    string `json:"userId"`
	Email string `json:"userEmail"`
	Role  string `json:"userRole"`
}

// LoginRequest is posted to log in.
type LoginRequest struct {
	Email    string `json:"userEmail" validate:"required"`
	Password string `json:"userPassword" validate:"required"`
}

// LoginResponse carries the session token after a successful login.
type LoginResponse struct {
	ID    string `json:"userId"`
	Email string `json:"userEmail"`
	Role  string `json:"userRole"`
	Token string `json:"token"`
}

// ComputerRequest names a computer and carries the caller's token.  It
// is the body for reserve and relieve.
type ComputerRequest struct {
	ID    string `json:"id" validate:"required"`
	Token string `json:"token"`
}

// AddComputerRequest is posted by an administrator to add a computer.
// If SSH is empty the backend makes one up.
type AddComputerRequest struct {
	OS    string `json:"os" validate:"required"`
	CPU   string `json:"cpu" validate:"required"`
	RAM   int    `json:"ram" validate:"gt=0"`
	SSH   string `json:"ssh,omitempty"`
	Token string `json:"token"`
}

// ComputerResponse describes a single computer.
type ComputerResponse struct {
	ID  string `json:"id"`
	OS  string `json:"os"`
	CPU string `json:"cpu"`
	RAM int    `json:"ram"`

	// Status is true if the computer is available.
	Status bool   `json:"status"`
	SSH    string `json:"ssh"`
}

// ComputerList is the response to a request for all computers.
type ComputerList struct {
	Computers []ComputerResponse `json:"computers"`
}

// ReservationResponse acknowledges a reserve or relieve request.
// Reserved reflects the new state of the computer.
type ReservationResponse struct {
	ID       string `json:"id"`
	Reserved bool   `json:"reserved"`
}

// StatusError is the value of ErrorResponse.Status.
const StatusError = "Error"

// ErrorResponse is returned with any failing HTTP status.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
