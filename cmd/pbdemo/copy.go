package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oerlikon/progressbar"
	"github.com/spf13/cobra"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy BUCKET_URL KEY DEST",
		Short: "Download a blob to a local file, showing transfer progress.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd.Context(), a, cmd.ErrOrStderr(), args[0], args[1], args[2])
		},
	}
}

func runCopy(ctx context.Context, a *app, w io.Writer, bucketURL, key, dest string) error {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return fmt.Errorf("open bucket %s: %w", bucketURL, err)
	}
	defer bucket.Close()

	br, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return fmt.Errorf("open %s: %w", key, err)
	}
	a.log.Debug("copying", "bucket", bucketURL, "key", key, "size", br.Size())

	f, err := os.Create(dest)
	if err != nil {
		br.Close()
		return err
	}
	defer f.Close()

	bar := progressbar.New64(key, br.Size(), progressbar.OptionWriter(w))
	bar.FileTransferMode()

	r := progressbar.NewReader(br, bar)
	if _, err := io.Copy(f, r); err != nil {
		br.Close()
		bar.Error()
		bar.Halt()
		return fmt.Errorf("copy %s: %w", key, err)
	}
	if err := r.Close(); err != nil {
		return err
	}
	a.log.Info("copied", "key", key, "dest", dest, "bytes", bar.Current())
	return f.Close()
}
