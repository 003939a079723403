package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/vertexdash/internal/backend"
)

// TokenEnv supplies a backend token when --token is not given.
const TokenEnv = "VERTEXDASH_TOKEN"

type authFlags struct {
	username string
	password string
	token    string
}

func (a *authFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&a.username, "username", "", "Backend username")
	cmd.PersistentFlags().StringVar(&a.password, "password", "", "Backend password")
	cmd.PersistentFlags().StringVar(&a.token, "token", "", "Backend bearer token (or "+TokenEnv+" env)")
}

// client returns a backend client authenticated with a token, logging in
// first when only credentials were given.
func (a *authFlags) client(ctx context.Context) (*backend.Client, error) {
	base := backend.New(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, logger)

	token := a.token
	if token == "" {
		token = os.Getenv(TokenEnv)
	}
	if token != "" {
		if sub := backend.TokenSubject(token); sub != "" {
			logger.Debug("using token", "subject", sub)
		}
		return base.WithToken(token), nil
	}

	if a.username == "" || a.password == "" {
		return nil, errors.New("authentication required: use --token (or " + TokenEnv + ") or --username and --password")
	}
	res, err := base.Login(ctx, a.username, a.password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, errors.New("login failed: invalid username or password")
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	logger.Debug("logged in", "username", res.Username)
	return base.WithToken(res.Token), nil
}
