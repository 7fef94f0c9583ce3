package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"book-catalog/pkg/utils"

	"github.com/spf13/cobra"
)

var hashUser string

// hashPasswordCmd prints a bcrypt hash suitable for AUTH_USERS
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for an AUTH_USERS entry",
	Long: `Print a bcrypt hash for an AUTH_USERS entry. The password is read from the
first argument or, when absent, from the first line of standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd, args)
		if err != nil {
			return err
		}

		hash, err := utils.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		if hashUser != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", hashUser, hash)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	hashPasswordCmd.Flags().StringVarP(&hashUser, "user", "u", "", "prefix output with user: for AUTH_USERS")
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return "", errors.New("empty password")
	}
	return password, nil
}
