// Package debtctl implements the operator commands of cmd/debtctl: hashing
// a password typed at the terminal and registering a user straight into the
// database.
package debtctl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// ErrPasswordMismatch is returned when the confirmation differs.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ErrEmptyPassword is returned for an empty input.
var ErrEmptyPassword = errors.New("password must not be empty")

// GetPassword prints prompt to w and reads a password from stdin without
// echo. A newline is printed after the read.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetConfirmedPassword reads the password twice and returns it when both
// entries match.
func GetConfirmedPassword(w io.Writer) (string, error) {
	first, err := GetPassword(w, "Enter password: ")
	if err != nil {
		return "", err
	}
	defer wipe(first)

	if len(first) == 0 {
		return "", ErrEmptyPassword
	}

	second, err := GetPassword(w, "Repeat password: ")
	if err != nil {
		return "", err
	}
	defer wipe(second)

	if !bytes.Equal(first, second) {
		return "", ErrPasswordMismatch
	}
	return string(first), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
