package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordPrompt asks for a secret without taking it as an argument.
type PasswordPrompt func(prompt string) (string, error)

// NewPasswordPrompt returns a prompt that reads from in and writes the prompt to out.
// When in is a terminal the input is not echoed.
func NewPasswordPrompt(in *os.File, out io.Writer) PasswordPrompt {
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)

		fd := int(in.Fd())
		if term.IsTerminal(fd) {
			secret, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("failed to read password: %w", err)
			}
			return string(secret), nil
		}

		return ReadLine(in)
	}
}

// StaticPasswordPrompt always answers with password. Used for scripted input.
func StaticPasswordPrompt(password string) PasswordPrompt {
	return func(string) (string, error) {
		return password, nil
	}
}

// ReadLine reads one line from r without its trailing newline.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
