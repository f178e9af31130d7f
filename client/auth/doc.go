// Package auth implements the client side of the identity exchange: the
// Provider talks to the /auth endpoints over a plain transport, while the
// Service validates input, seeds the credential store on login/signup and
// clears it on logout. Credential attachment and renewal live in the
// transport sub-package; the session itself lives in the store sub-package.
package auth
