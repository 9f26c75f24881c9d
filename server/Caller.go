package server

import (
	"fmt"
	"net/http"
	"strings"
)

// Caller provides the caller identity attributes taken from the request. The
// fronting proxy terminates TLS and asserts the username in a header; when a
// client certificate reaches us directly the common name serves as fallback.
type Caller struct {
	// UserName is the authenticated account name asserted by the gateway
	UserName string
	// CommonName is the CN from a direct client certificate, if presented
	CommonName string
}

// CallerFromRequest populates a Caller from request headers and TLS state.
func CallerFromRequest(r *http.Request) Caller {
	var caller Caller
	caller.UserName = strings.TrimSpace(r.Header.Get("USER_NAME"))
	if r.TLS != nil && len(r.TLS.PeerCertificates) > 0 {
		caller.CommonName = r.TLS.PeerCertificates[0].Subject.CommonName
	}
	if caller.UserName == "" {
		caller.UserName = caller.CommonName
	}
	return caller
}

// ValidateHeaders checks that the request asserted an identity we can use.
func (c Caller) ValidateHeaders() error {
	if c.UserName == "" {
		return fmt.Errorf("no user identity provided in USER_NAME header or client certificate")
	}
	return nil
}
