package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/recipe-app/recipe-api/internal/core/ports"
	"github.com/recipe-app/recipe-api/internal/core/service"
	"github.com/recipe-app/recipe-api/internal/infrastructure/db"
	"github.com/recipe-app/recipe-api/pkg/logger"
)

// Terminal seams, replaced in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

type superuserOptions struct {
	Email    string
	Password string
}

func NewCreateSuperuserCommand() *cobra.Command {
	opts := &superuserOptions{}

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an account with staff and superuser rights",
		Long: `Create an account with staff and superuser rights.

Missing values are prompted for when stdin is a terminal. The password is
read without echo and must be entered twice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			storage, err := db.Open(cmd.Context(), cfg, logger.Component(log, "storage"))
			if err != nil {
				return err
			}
			defer storage.Close(context.Background())

			users := service.NewUserService(storage.Users, storage.Tokens, logger.Component(log, "users"))
			return runCreateSuperuser(cmd.Context(), users, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "email address of the superuser")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password of the superuser (prompted when omitted)")

	return cmd
}

func runCreateSuperuser(ctx context.Context, users ports.UserService, opts *superuserOptions, in io.Reader, out io.Writer) error {
	email := strings.TrimSpace(opts.Email)
	if email == "" {
		line, err := promptLine(bufio.NewReader(in), out, "Email: ")
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		email = line
	}
	if email == "" {
		return errors.New("email is required")
	}

	password := opts.Password
	if password == "" {
		p, err := promptPassword(out)
		if err != nil {
			return err
		}
		password = p
	}

	user, err := users.CreateSuperuser(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Superuser %s created.\n", user.Email)
	return nil
}

func promptLine(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", errors.New("password is required when stdin is not a terminal")
	}

	fmt.Fprint(w, "Password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(w, "Password (again): ")
	second, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be blank")
	}
	return string(first), nil
}
