package main

import (
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
)

const (
	defaultSecretBytes = 32
	minSecretBytes     = 16
)

type genSecretOptions struct {
	Bytes int
}

func parseGenSecretFlags(args []string) (genSecretOptions, error) {
	fs := flag.NewFlagSet("gen-secret", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts genSecretOptions
	fs.IntVar(&opts.Bytes, "bytes", defaultSecretBytes, "Random bytes in the secret")
	if err := fs.Parse(args); err != nil {
		return genSecretOptions{}, err
	}
	if opts.Bytes < minSecretBytes {
		return genSecretOptions{}, fmt.Errorf("--bytes must be at least %d", minSecretBytes)
	}
	return opts, nil
}

// runGenSecret prints a URL-safe random secret. Prepend it to SESSION_SECRET
// to rotate; keep the old value after it until outstanding sessions expire.
func runGenSecret(cmdCtx *commandContext, args []string) error {
	opts, err := parseGenSecretFlags(args)
	if err != nil {
		return err
	}
	key := securecookie.GenerateRandomKey(opts.Bytes)
	if key == nil {
		return errors.New("generate random key: entropy source failed")
	}
	return writef(cmdCtx.Out, "%s\n", base64.RawURLEncoding.EncodeToString(key))
}
