package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
	"github.com/educonnect/educonnect/pkg/sdk"
)

var (
	loginEmail string
	loginName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to EduConnect",
	Long: `Signs in to EduConnect and syncs the backend session.

When an identity provider issuer is configured (--issuer or EDU_ISSUER),
the CLI runs a device authorization flow and prints a verification URL.
Without an issuer the identity is taken from --email/--name or the
EDU_EMAIL/EDU_NAME environment variables, which is useful against local
servers that do not verify tokens.

After sign-in the backend session is synced and the CLI reports where the
web app would send you next: role selection (onboarding) or the dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		identity, err := resolveIdentity(cmd, cfg)
		if err != nil {
			return err
		}

		store, err := cfg.ClientProvider.Store()
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		syncer, err := cfg.ClientProvider.Syncer()
		if err != nil {
			return err
		}

		session, err := syncer.Sync(cmd.Context(), identity.ProviderState())
		if err != nil {
			return fmt.Errorf("session sync failed: %w", err)
		}

		fmt.Println("------------------------------------------------------------")
		fmt.Printf("✅ Signed in as: %s\n", session.Email)
		if session.HasRole() {
			fmt.Printf("Role: %s\n", session.Role)
		}

		resolver := sdk.NewResolver(store)
		switch resolver.Resolve(identity.ProviderState()) {
		case sdk.DestOnboarding:
			fmt.Println("No role selected yet; run `eductl role select student|teacher` to finish onboarding.")
		case sdk.DestDashboard:
			fmt.Println("You are all set; try `eductl gigs list`.")
		}
		return nil
	},
}

func resolveIdentity(cmd *cobra.Command, cfg *config.GlobalConfig) (*sdk.Identity, error) {
	if loginEmail != "" {
		return &sdk.Identity{Email: loginEmail, Name: loginName}, nil
	}

	if cfg.Issuer != "" {
		if cfg.NonInteractive {
			return nil, fmt.Errorf("device-code login requires an interactive terminal; pass --email or set EDU_EMAIL")
		}
		return sdk.LoginWithDeviceCode(cmd.Context(), cfg.Issuer, cfg.ClientID)
	}

	if identity, ok := sdk.EnvIdentity(); ok {
		fmt.Printf("Using identity from environment: %s\n", identity.Email)
		return identity, nil
	}

	return nil, fmt.Errorf("no identity available; configure --issuer for device-code login or pass --email")
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Sign in with this email instead of the device-code flow")
	loginCmd.Flags().StringVar(&loginName, "name", "", "Display name to register alongside --email")
}
