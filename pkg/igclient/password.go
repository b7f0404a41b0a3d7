package igclient

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

// PromptPassword writes prompt to stdout and reads a password from stdin
// without echoing it, grounded on the teacher's login.go password prompt.
func PromptPassword(prompt string) (ig.Password, error) {
	fmt.Print(prompt)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()

	if err != nil {
		return ig.Password{}, ig.NewInvalidRequest("failed to read password from terminal", err)
	}

	return ig.NewPassword(string(raw))
}
