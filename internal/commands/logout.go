package commands

import "github.com/registryops/eppproxy/internal/epp"

// Session termination. The session manager watches for this operation to
// start draining; the encoder itself is just the empty logout element.

func init() {
	register(OpLogout, &handler{name: "logout", encode: encodeLogout, decode: decodeLogout})
}

// LogoutRequest ends the session after outstanding work completes.
type LogoutRequest struct{}

func (*LogoutRequest) Op() Op { return OpLogout }

// LogoutResponse is empty; the expected result code is 1500.
type LogoutResponse struct{}

func encodeLogout(f Features, req Request) (*epp.Command, error) {
	return &epp.Command{Logout: &struct{}{}}, nil
}

func decodeLogout(resp *epp.Response) (any, error) {
	return &LogoutResponse{}, nil
}
