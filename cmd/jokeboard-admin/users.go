package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/target/jokeboard/internal/adapters/passwords"
	"github.com/target/jokeboard/internal/bootstrap"
	"github.com/target/jokeboard/internal/data"
	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
)

type createUserOptions struct {
	Username string
	Password string
}

type deleteUserOptions struct {
	Username string
	ID       string
	Yes      bool
}

type hashPasswordOptions struct {
	Password string
	Cost     int
}

func parseCreateUserFlags(args []string) (createUserOptions, error) {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts createUserOptions
	fs.StringVar(&opts.Username, "username", "", "Username to register (required)")
	fs.StringVar(&opts.Password, "password", "", "Password; read from stdin when omitted")
	if err := fs.Parse(args); err != nil {
		return createUserOptions{}, err
	}
	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" {
		return createUserOptions{}, errors.New("--username is required")
	}
	return opts, nil
}

func parseDeleteUserFlags(args []string) (deleteUserOptions, error) {
	fs := flag.NewFlagSet("delete-user", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts deleteUserOptions
	fs.StringVar(&opts.Username, "username", "", "Username to delete")
	fs.StringVar(&opts.ID, "id", "", "User ID to delete")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return deleteUserOptions{}, err
	}
	opts.Username = strings.TrimSpace(opts.Username)
	opts.ID = strings.TrimSpace(opts.ID)
	if (opts.Username == "") == (opts.ID == "") {
		return deleteUserOptions{}, errors.New("exactly one of --username or --id is required")
	}
	return opts, nil
}

func parseHashPasswordFlags(args []string) (hashPasswordOptions, error) {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts hashPasswordOptions
	fs.StringVar(&opts.Password, "password", "", "Password; read from stdin when omitted")
	fs.IntVar(&opts.Cost, "cost", passwords.DefaultCost, "bcrypt work factor")
	if err := fs.Parse(args); err != nil {
		return hashPasswordOptions{}, err
	}
	return opts, nil
}

// readSecret returns flagValue, or the first line of in when the flag was empty.
func readSecret(flagValue string, in io.Reader) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("password is required (--password or stdin)")
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}

func runCreateUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateUserFlags(args)
	if err != nil {
		return err
	}
	password, err := readSecret(opts.Password, cmdCtx.In)
	if err != nil {
		return err
	}

	in, err := connectInfra(cmdCtx.Ctx, cmdCtx, false)
	if err != nil {
		return err
	}
	defer in.close(cmdCtx)

	svc, err := bootstrap.NewServices(in.serviceDeps(cmdCtx))
	if err != nil {
		return err
	}
	user, err := svc.Auth.Register(cmdCtx.Ctx, model.RegisterInput{Username: opts.Username, Password: password})
	if err != nil {
		if _, ok := model.AsFieldErrors(err); ok {
			return fmt.Errorf("invalid input: %w", err)
		}
		return err
	}
	return writef(cmdCtx.Out, "created user %s (%s)\n", user.Username, user.ID)
}

func runDeleteUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseDeleteUserFlags(args)
	if err != nil {
		return err
	}

	in, err := connectInfra(cmdCtx.Ctx, cmdCtx, true)
	if err != nil {
		return err
	}
	defer in.close(cmdCtx)

	repo := data.NewUserRepo(in.DB)
	id := opts.ID
	label := id
	if opts.Username != "" {
		cred, findErr := repo.FindByUsername(cmdCtx.Ctx, opts.Username)
		if findErr != nil {
			return fmt.Errorf("find user %q: %w", opts.Username, findErr)
		}
		id = cred.ID
		label = fmt.Sprintf("%s (%s)", cred.Username, cred.ID)
	}

	if !opts.Yes {
		ok, promptErr := confirm(cmdCtx, fmt.Sprintf("Delete user %s and all of their jokes?", label))
		if promptErr != nil {
			return promptErr
		}
		if !ok {
			return writef(cmdCtx.Out, "aborted\n")
		}
	}

	deleted, err := repo.Delete(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("user %s not found", label)
	}

	svc, err := bootstrap.NewServices(in.serviceDeps(cmdCtx))
	if err != nil {
		return err
	}
	if err := bootstrap.InvalidateUser(cmdCtx.Ctx, svc.Users, id); err != nil {
		// The cache entry expires on its own; open sessions end at the latest then.
		cmdCtx.Logger.Warn("invalidate cached user failed", "user_id", id, "error", err)
	}
	return writef(cmdCtx.Out, "deleted user %s\n", label)
}

func runHashPassword(cmdCtx *commandContext, args []string) error {
	opts, err := parseHashPasswordFlags(args)
	if err != nil {
		return err
	}
	password, err := readSecret(opts.Password, cmdCtx.In)
	if err != nil {
		return err
	}
	hash, err := passwords.NewBcryptHasher(opts.Cost).Hash(password)
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "%s\n", hash)
}

func confirm(cmdCtx *commandContext, prompt string) (bool, error) {
	if err := writef(cmdCtx.Out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	sc := bufio.NewScanner(cmdCtx.In)
	if !sc.Scan() {
		return false, sc.Err()
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes", nil
}
