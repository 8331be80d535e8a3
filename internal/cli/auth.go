package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"agentview/internal/credentials"
)

// SetToken stores the gateway bearer token in the system keyring, prompting
// with a hidden input when no value was given on the command line.
func SetToken(value string) error {
	token := strings.TrimSpace(value)
	if token == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Gateway token").
				Description("Stored in the system keyring.").
				Password(true).
				Value(&token),
		))
		if err := form.Run(); err != nil {
			return err
		}
		token = strings.TrimSpace(token)
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := credentials.SetGatewayToken(token); err != nil {
		return err
	}
	fmt.Println("Stored gateway token in the system keyring")
	return nil
}

// ClearToken removes the stored gateway token.
func ClearToken() error {
	if err := credentials.DeleteGatewayToken(); err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return fmt.Errorf("no gateway token is stored")
		}
		return err
	}
	fmt.Println("Removed gateway token from the system keyring")
	return nil
}

// TokenStatus reports whether a gateway token is stored.
func TokenStatus() error {
	exists, err := credentials.HasGatewayToken()
	if err != nil {
		return err
	}
	if exists {
		fmt.Println("A gateway token is stored in the system keyring")
	} else {
		fmt.Println("No gateway token is stored")
	}
	return nil
}
