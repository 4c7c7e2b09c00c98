package service

import "errors"

// Sentinel errors the handlers map to HTTP statuses.
var (
	// ErrNotFound covers unknown model/dataset ids and user names.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when an identity acts on a record it
	// does not own.
	ErrForbidden = errors.New("not the owner of this record")

	// ErrNameTaken is returned on registration and rename conflicts.
	ErrNameTaken = errors.New("account with this username already exists")

	// ErrNoSuchAccount is returned when a login names an unknown user.
	ErrNoSuchAccount = errors.New("no account with this username, register first")

	// ErrWrongCredentials is returned on a password mismatch.
	ErrWrongCredentials = errors.New("wrong username or password")

	// ErrPasswordMismatch is returned when the registration passwords differ.
	ErrPasswordMismatch = errors.New("passwords must match")

	// ErrMissingFile is returned when an upload has no usable filename.
	ErrMissingFile = errors.New("no file selected")
)
