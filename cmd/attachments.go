package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/testit/testit"
)

func (a *app) newAttachmentsCmd() *cobra.Command {
	attachmentsCmd := &cobra.Command{
		Use:   "attachments",
		Short: "Upload and download attachments",
	}

	var testResultID string

	uploadCmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file as an attachment",
		Long: `Upload a file. With --test-result the attachment is added to that test
result, otherwise it is created standalone and its id can be referenced later.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := testit.FilePath(args[0])

			var (
				resp *testit.Response
				err  error
			)
			if testResultID != "" {
				resp, err = a.client.CreateTestResultAttachment(cmd.Context(), testResultID, file)
			} else {
				resp, err = a.client.AddAttachment(cmd.Context(), file, nil)
			}
			if err != nil {
				return err
			}

			a.logger.Info().Str("file", file.Name()).Int("status", resp.StatusCode).Msg("Uploaded attachment")
			return a.writeResponse(cmd.OutOrStdout(), resp)
		},
	}
	uploadCmd.Flags().StringVar(&testResultID, "test-result", "", "attach to this test result")

	var (
		width, height int
		resize        string
		background    string
		outPath       string
	)

	downloadCmd := &cobra.Command{
		Use:   "download <testResultId> <attachmentId>",
		Short: "Download an attachment of a test result",
		Long: `Download an attachment. Images can be resized on the server with
--width, --height, --resize (Crop or AddBackgroundStripes) and --background.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := testit.Params{}
			if cmd.Flags().Changed("width") {
				params["Width"] = width
			}
			if cmd.Flags().Changed("height") {
				params["Height"] = height
			}
			if resize != "" {
				params["ResizeOption"] = resize
			}
			if background != "" {
				params["BackgroundColor"] = background
			}

			resp, err := a.client.DownloadTestResultAttachment(cmd.Context(), args[0], args[1], params)
			if err != nil {
				return err
			}
			if err := resp.Err(); err != nil {
				return err
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(resp.Raw)
				return err
			}

			if err := os.WriteFile(outPath, resp.Raw, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			a.logger.Info().Str("path", outPath).Int("bytes", len(resp.Raw)).Msg("Downloaded attachment")
			return nil
		},
	}
	downloadCmd.Flags().IntVar(&width, "width", 0, "resize to this width")
	downloadCmd.Flags().IntVar(&height, "height", 0, "resize to this height")
	downloadCmd.Flags().StringVar(&resize, "resize", "", "resize mode (Crop|AddBackgroundStripes)")
	downloadCmd.Flags().StringVar(&background, "background", "", "background color for resized images")
	downloadCmd.Flags().StringVar(&outPath, "out", "", "write to this file instead of stdout")

	attachmentsCmd.AddCommand(uploadCmd, downloadCmd)
	return attachmentsCmd
}
