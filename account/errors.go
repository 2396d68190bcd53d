package account

import "fmt"

type (
	DuplicateEmail struct {
		Email string
	}

	UserNotFound struct {
		Email string
	}

	InvalidPassword struct{}

	InvalidToken struct {
		Cause error
	}
)

func (d DuplicateEmail) Error() string {
	return fmt.Sprintf("email %v is already registered", d.Email)
}

func (u UserNotFound) Error() string {
	return fmt.Sprintf("no user registered with email %v", u.Email)
}

func (InvalidPassword) Error() string {
	return "password does not match"
}

func (i InvalidToken) Error() string {
	if i.Cause != nil {
		return fmt.Sprintf("token is not valid: %v", i.Cause)
	}
	return "token is not valid"
}

func (i InvalidToken) Unwrap() error { return i.Cause }
