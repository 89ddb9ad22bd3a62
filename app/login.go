package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hostauth/hostauth/internal/auth"
)

func newLoginCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify credentials read from stdin and print the identity record or false",
		Long: `login reads a request document {"body":{"username":"...","password":"..."}}
from stdin. It prints the identity record on success and false when the
credentials were rejected, both with exit code 0. A failed uid lookup after a
successful credential check exits non zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readRequest(cmd.InOrStdin())
			if err != nil {
				return err
			}

			p, err := s.provider()
			if err != nil {
				return err
			}

			res, err := p.Login(cmd.Context(), req)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func readRequest(r io.Reader) (auth.Request, error) {
	var req auth.Request

	dec := json.NewDecoder(io.LimitReader(r, maxRequestSize))
	if err := dec.Decode(&req); err != nil {
		return auth.Request{}, fmt.Errorf("reading login request: %w", err)
	}

	return req, nil
}

func writeJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	return nil
}
