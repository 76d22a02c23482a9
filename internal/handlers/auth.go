package handlers

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	apierrors "github.com/yukikurage/todo-cli/internal/errors"
	"github.com/yukikurage/todo-cli/internal/render"
	"github.com/yukikurage/todo-cli/internal/services"
	"github.com/yukikurage/todo-cli/internal/session"
	"github.com/yukikurage/todo-cli/internal/utils"
)

const passwordPrompt = "Password: "

// AuthHandler coordinates the signup, login, logout and whoami commands.
type AuthHandler struct {
	authService *services.AuthService
	sess        *session.Session
	prompt      utils.PasswordPrompt
	logger      *log.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sess *session.Session, prompt utils.PasswordPrompt, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sess:        sess,
		prompt:      prompt,
		logger:      logger,
	}
}

// Signup registers a new user. The caller stays logged out.
func (h *AuthHandler) Signup(cmd *cobra.Command, args []string) error {
	username := args[0]
	password, err := h.prompt(passwordPrompt)
	if err != nil {
		return apierrors.Respond(cmd.OutOrStdout(), apierrors.Internal(err))
	}

	if _, err := h.authService.Signup(services.SignupInput{
		Username: username,
		Password: password,
	}); err != nil {
		return h.respondAuthError(cmd, apierrors.ErrSignupFailed, err)
	}

	h.logger.Info("user signed up", "username", username)
	fmt.Fprintln(cmd.OutOrStdout(), render.SuccessStyle.Render("Signup successful"))
	return nil
}

// Login authenticates a user and persists the session marker.
func (h *AuthHandler) Login(cmd *cobra.Command, args []string) error {
	username := args[0]
	password, err := h.prompt(passwordPrompt)
	if err != nil {
		return apierrors.Respond(cmd.OutOrStdout(), apierrors.Internal(err))
	}

	if _, err := h.authService.Login(h.sess, services.LoginInput{
		Username: username,
		Password: password,
	}); err != nil {
		return h.respondAuthError(cmd, apierrors.ErrLoginFailed, err)
	}

	h.logger.Info("user logged in", "username", username)
	fmt.Fprintln(cmd.OutOrStdout(), render.SuccessStyle.Render("Login successful"))
	return nil
}

// Logout clears the session and removes the marker.
func (h *AuthHandler) Logout(cmd *cobra.Command, args []string) error {
	if err := h.authService.Logout(h.sess); err != nil {
		h.logger.Error("logout failed", "err", err)
		return apierrors.Respond(cmd.OutOrStdout(), apierrors.Internal(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

// WhoAmI prints the authenticated user.
func (h *AuthHandler) WhoAmI(cmd *cobra.Command, args []string) error {
	user := h.sess.CurrentUser()
	if user == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as: %s\n", user.Username)
	return nil
}

// respondAuthError prints failure for expected auth errors and aborts on the rest.
func (h *AuthHandler) respondAuthError(cmd *cobra.Command, failure *apierrors.CLIError, err error) error {
	switch {
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrInvalidCredentials):
		h.logger.Info(failure.Message, "err", err)
		return apierrors.Respond(cmd.OutOrStdout(), failure)
	default:
		h.logger.Error(failure.Message, "err", err)
		return apierrors.Respond(cmd.OutOrStdout(), apierrors.Internal(err))
	}
}
