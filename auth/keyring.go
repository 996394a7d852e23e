// Package auth keeps the provider session cookie in the system keyring.
package auth

import (
	"errors"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/zalando/go-keyring"
)

const user = "sessdata"

// SetSession stores the SESSDATA cookie value.
func SetSession(session string) error {
	return keyring.Set(constant.App, user, session)
}

// Session returns the stored cookie value, empty when logged out.
func Session() (string, error) {
	session, err := keyring.Get(constant.App, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return session, err
}

// DeleteSession forgets the cookie. Deleting a missing session is not an error.
func DeleteSession() error {
	err := keyring.Delete(constant.App, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
