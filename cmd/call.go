package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/testit/testit"
)

func (a *app) newCallCmd() *cobra.Command {
	var (
		query    string
		body     string
		filePath string
	)

	callCmd := &cobra.Command{
		Use:   "call <METHOD> <PATH>",
		Short: "Send a raw request to the TestIT API",
		Long: `Send any request through the client: authentication, encoding and
decoding are handled, nothing else is checked.

  testit call GET /api/v2/projects --query 'Take=5'
  testit call POST /api/v2/sections/rename --body '{"id":"...","name":"New"}'
  testit call POST /api/v2/workItems --body @workitem.json
  testit call POST /api/v2/attachments --file screenshot.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := testit.Request{
				Method: args[0],
				Path:   args[1],
				Query:  strings.TrimPrefix(query, "?"),
			}

			if body != "" {
				raw, err := readBody(body)
				if err != nil {
					return err
				}
				req.Body = raw
			}
			if filePath != "" {
				file := testit.FilePath(filePath)
				req.File = &file
			}

			resp, err := a.client.Send(cmd.Context(), req)
			if err != nil {
				return err
			}

			a.logger.Debug().
				Str("method", strings.ToUpper(args[0])).
				Str("path", args[1]).
				Int("status", resp.StatusCode).
				Bool("json", resp.IsJSON()).
				Msg("Raw call completed")

			if resp.IsError() {
				// Show the server's explanation before failing
				_ = writeValue(cmd.OutOrStdout(), a.output, resp.Value())
				return resp.Err()
			}
			return a.writeResponse(cmd.OutOrStdout(), resp)
		},
	}

	callCmd.Flags().StringVarP(&query, "query", "q", "", "encoded query string, e.g. 'Take=10&Skip=20'")
	callCmd.Flags().StringVarP(&body, "body", "b", "", "JSON body, or @file to read it from a file")
	callCmd.Flags().StringVar(&filePath, "file", "", "upload this file as multipart (POST only)")

	return callCmd
}

// readBody returns the JSON given inline or, with a leading @, from a file
func readBody(arg string) (json.RawMessage, error) {
	data := []byte(arg)
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: body is not valid JSON", testit.ErrInvalidBody)
	}
	return json.RawMessage(data), nil
}
