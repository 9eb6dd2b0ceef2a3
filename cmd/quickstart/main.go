package main

import (
	"fmt"
	"os"

	"github.com/axent-pl/security"
	"github.com/axent-pl/security/common/logx"
	"github.com/axent-pl/security/internal/config"
	"github.com/axent-pl/security/internal/quickstart"
	"github.com/axent-pl/security/realm"
	"github.com/axent-pl/security/rememberme"
	"github.com/axent-pl/security/session"
	"github.com/axent-pl/security/userpassword"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultPassword = "vespa"

func newRootCmd() *cobra.Command {
	var configPath string
	flags := &config.Config{}
	flags.LoadDefaults()

	cmd := &cobra.Command{
		Use:   "quickstart",
		Short: "Log a demo subject in, check its roles and permissions, log it out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg.ApplyFlags(flags, cmd.Flags())

			level, err := logx.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logx.SetLogger(logx.New(cmd.ErrOrStderr(), level))

			password := cfg.Password
			if password == "" {
				password, err = promptPassword(cmd)
				if err != nil {
					return err
				}
			}

			store, err := quickstart.NewDemoStore(cfg.BcryptCost)
			if err != nil {
				return err
			}
			sessions := session.NewManager(session.WithTimeout(cfg.SessionTimeout))
			if cfg.SessionTimeout > 0 {
				sessions.StartSweeper(cfg.SessionTimeout / 2)
			}
			defer sessions.Stop()

			sm, err := security.NewSecurityManager(
				&realm.UserPasswordProvider{Store: store},
				store,
				security.WithSessionManager(sessions),
				security.WithRememberMe(&rememberme.Manager{
					Secret: []byte(cfg.RememberMeSecret),
					TTL:    cfg.RememberMeTTL,
				}),
				security.WithGrantCacheSize(cfg.GrantCacheSize),
			)
			if err != nil {
				return err
			}

			_, err = quickstart.Run(cmd.Context(), sm, userpassword.UserPasswordCredentials{
				Username:   cfg.Username,
				Password:   password,
				RememberMe: cfg.RememberMe,
			})
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a JSON configuration file")
	flags.RegisterFlags(cmd.Flags())
	return cmd
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return defaultPassword, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func main() {
	cmd := newRootCmd()
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
