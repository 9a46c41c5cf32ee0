// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes an access.Store as the platform's REST
// service.  The restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.
//
// HTTP Considerations
//
// Every response body is JSON, sent as application/json, including
// error responses.  Request bodies must be application/json or
// text/json.
//
// Authentication
//
// Login returns a signed token.  Every computer route requires that
// token as a "token" query parameter (for GET) or body field (for
// POST); there is no Authorization: header.  A missing, malformed, or
// expired token is a 401 error.  Adding computers additionally needs
// a token issued to an "admin" user.
//
// Status Codes
//
//     200 OK                     success
//     400 Bad Request            undecodable or invalid request body
//     401 Unauthorized           bad password or bad token
//     403 Forbidden              token lacks the admin role
//     404 Not Found              unknown user or computer
//     405 Method Not Allowed     wrong HTTP method for the path
//     409 Conflict               duplicate user or computer taken
//     415 Unsupported Media Type request body is not JSON
//     500 Internal Server Error  anything else
package restserver
