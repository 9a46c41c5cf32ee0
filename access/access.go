// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package access defines the data types and interfaces of the Computer
// Access Platform.  Users register and log in to receive a token, and
// then use that token to list the shared computers, look at one, and
// reserve or relieve it.
//
// The API interface is the client's view of the system; it is
// implemented over HTTP by the restclient package.  The Store
// interface is the backend's view; it is implemented by the memory
// and postgres packages and served by the restserver package.
//
// Client operations classify responses by the presence of a single
// marker field.  There are exactly three observable outcomes for any
// call, and Classify reports which one an error corresponds to:
//
//     session, err := client.Login(ctx, email, password)
//     switch access.Classify(err) {
//     case access.OK:               // use session
//     case access.InvalidShape:     // backend answered without "token"
//     case access.TransportFailure: // network or HTTP failure
//     }
package access

import "context"

// Registration is the backend's acknowledgement of a new account.
type Registration struct {
	UserID string `mapstructure:"userId"`
	Email  string `mapstructure:"userEmail"`
	Role   string `mapstructure:"userRole"`

	// Data holds the complete response body, unmodified.
	Data map[string]interface{} `mapstructure:"-"`
}

// Session is the result of a successful login.  The client does not
// retain it; callers are responsible for keeping Token around and
// passing it to later calls.
type Session struct {
	UserID string `mapstructure:"userId"`
	Email  string `mapstructure:"userEmail"`
	Role   string `mapstructure:"userRole"`
	Token  string `mapstructure:"token"`

	// Data holds the complete response body, unmodified.
	Data map[string]interface{} `mapstructure:"-"`
}

// ComputerSummary is one entry of the computer list.  Its contents
// are whatever the backend sent and are not interpreted.
type ComputerSummary map[string]interface{}

// Computer describes a single computer in detail.
type Computer struct {
	ID  string `mapstructure:"id"`
	OS  string `mapstructure:"os"`
	CPU string `mapstructure:"cpu"`
	RAM int    `mapstructure:"ram"`

	// Available is true if nobody has reserved the computer.  On
	// the wire this is the "status" field.
	Available bool `mapstructure:"status"`

	// SSH is the connection string for the computer, for instance
	// "root@10.1.2.3".
	SSH string `mapstructure:"ssh"`

	// Data holds the complete response body, unmodified.  This is
	// only populated on the client side.
	Data map[string]interface{} `mapstructure:"-"`
}

// ComputerSpec holds the fields needed to add a new computer.
type ComputerSpec struct {
	OS  string
	CPU string
	RAM int
	SSH string
}

// User is a registered account as the backend stores it.
type User struct {
	ID           string
	Email        string
	Role         string
	PasswordHash []byte
}

// Well-known roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Accounts holds the two single-request account operations.
// Register composes them.
type Accounts interface {
	// CreateAccount registers a new user.  It makes exactly one
	// request and does not log in.
	CreateAccount(ctx context.Context, email, password, role string) (Registration, error)

	// Login exchanges credentials for a session token.
	Login(ctx context.Context, email, password string) (Session, error)
}

// API is the complete client interface to the platform.  Every method
// returns one of the three outcomes described in the package
// documentation.
type API interface {
	Accounts

	// Register creates an account and, if that succeeds, logs in
	// with the same credentials.  See the package-level Register
	// function.
	Register(ctx context.Context, email, password, role string) (Session, error)

	// GetAll returns the list of computers.
	GetAll(ctx context.Context, token string) ([]ComputerSummary, error)

	// GetComputer returns details of a single computer.
	GetComputer(ctx context.Context, id, token string) (Computer, error)

	// ReserveComputer reserves a computer, returning true if the
	// backend acknowledged the reservation.
	ReserveComputer(ctx context.Context, id, token string) (bool, error)

	// RelieveComputer gives a reserved computer back, returning
	// true if the backend acknowledged it.
	RelieveComputer(ctx context.Context, id, token string) (bool, error)
}

// Store is the persistent state behind the platform.  Implementations
// must be safe for concurrent use.
type Store interface {
	// AddUser creates a new user.  Returns ErrUserAlreadyExists
	// if email is already registered.
	AddUser(email string, passwordHash []byte, role string) (User, error)

	// User finds a user by email address.  Returns
	// ErrUserNotFound if there is none.
	User(email string) (User, error)

	// AddComputer creates a new, available computer.
	AddComputer(spec ComputerSpec) (Computer, error)

	// Computer finds a computer by ID.  Returns ErrNoSuchComputer
	// if there is none.
	Computer(id string) (Computer, error)

	// Computers returns every computer, in the order they were
	// added.
	Computers() ([]Computer, error)

	// Reserve marks a computer as unavailable.  Returns
	// ErrComputerTaken if it already was.  At most one of any
	// number of concurrent Reserve calls for the same computer
	// succeeds.
	Reserve(id string) error

	// Relieve marks a computer as available again.  This
	// succeeds whether or not the computer was reserved.
	Relieve(id string) error
}
