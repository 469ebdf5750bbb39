package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Sign in with a display name",
	Long: `Sign in with a display name. Catalog and favorites commands require a
signed-in user. Without a name argument you are prompted for one.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	name := strings.Join(args, " ")
	if strings.TrimSpace(name) == "" {
		name, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout(), "Display name: ")
		if err != nil {
			return err
		}
	}

	user, err := a.identity.SignIn(cmd.Context(), name)
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if p.json {
		return p.JSON(user)
	}
	p.Success("Signed in as " + user.DisplayName)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.identity.SignOut(); err != nil {
		return err
	}
	newPrinter(cmd).Success("Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if p.json {
		return p.JSON(user)
	}
	p.Line("%s", user.DisplayName)
	p.Dim(fmt.Sprintf("id %s, signed in %s", user.ID, user.SignedInAt.Format("2006-01-02 15:04")))
	return nil
}

// prompt reads one trimmed line after printing label
func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}
