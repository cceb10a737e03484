// ABOUTME: Image commands: upload, info, url, exists and delete
// ABOUTME: Uploads are limited to the backend's 5MB image size

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/portfolio"
	"github.com/markalston/portfolio-admin/internal/tui/filepicker"
)

var (
	uploadName string
	fileYes    bool
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Upload and manage images",
}

func init() {
	upload := &cobra.Command{
		Use:   "upload [PATH]",
		Short: "Upload an image",
		Long: `Upload an image to the portfolio file store.

Without PATH on a terminal, an image picker opens listing recent uploads
and the images in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		Run:   cobraRun(runUpload),
	}
	upload.Flags().StringVar(&uploadName, "name", "", "File name to upload as (default: the base name of PATH)")

	info := &cobra.Command{
		Use:   "info NAME",
		Short: "Show metadata of an uploaded file",
		Args:  cobra.ExactArgs(1),
		Run:   cobraRun(runFileInfo),
	}
	url := &cobra.Command{
		Use:   "url NAME",
		Short: "Print the public URL of an uploaded file",
		Args:  cobra.ExactArgs(1),
		Run:   cobraRun(runFileURL),
	}
	exists := &cobra.Command{
		Use:   "exists NAME",
		Short: "Report whether a file is stored",
		Args:  cobra.ExactArgs(1),
		Run:   cobraRun(runFileExists),
	}
	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an uploaded file",
		Args:  cobra.ExactArgs(1),
		Run:   cobraRun(runFileDelete),
	}
	del.Flags().BoolVarP(&fileYes, "yes", "y", false, "Delete without asking")

	filesCmd.AddCommand(upload, info, url, exists, del)
	rootCmd.AddCommand(filesCmd)
}

func runUpload(ctx context.Context, a *app, args []string) error {
	recent := filepicker.NewRecent(a.cfg.ConfigDir)
	path, err := uploadPath(ctx, a, recent, args)
	if err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return usageError("cannot read %s: %v", path, err)
	}
	if st.IsDir() {
		return usageError("%s is a directory", path)
	}
	if st.Size() > portfolio.MaxUploadSize {
		return usageError("%s is %s; the limit is %s", path,
			humanize.IBytes(uint64(st.Size())), humanize.IBytes(portfolio.MaxUploadSize))
	}

	f, err := os.Open(path)
	if err != nil {
		return usageError("cannot read %s: %v", path, err)
	}
	defer f.Close()

	name := uploadName
	if name == "" {
		name = filepath.Base(path)
	}
	up, err := a.svc.Files.Upload(ctx, name, f)
	if err != nil {
		return err
	}

	if err := recent.Add(path); err != nil {
		a.logger.Warn("recording recent upload", "path", path, "error", err)
	}

	if IsJSONOutput() {
		return a.printer.JSON(up)
	}
	a.printer.Success("Uploaded %s (%s)", up.FileName, humanize.IBytes(uint64(st.Size())))
	a.printer.KeyValue("URL", up.FileURL)
	return nil
}

// uploadPath returns the PATH argument or, on a terminal, asks with the picker
func uploadPath(ctx context.Context, a *app, recent *filepicker.Recent, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !a.interactive() {
		return "", usageError("PATH is required when stdin is not a terminal")
	}

	files, err := recent.Load()
	if err != nil {
		a.logger.Warn("loading recent uploads", "error", err)
	}
	var images []filepicker.Image
	if cwd, err := os.Getwd(); err == nil {
		images, _ = filepicker.Discover(cwd)
	}
	return filepicker.Pick(ctx, filepicker.New(files, images))
}

func runFileInfo(ctx context.Context, a *app, args []string) error {
	info, err := a.svc.Files.Info(ctx, args[0])
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return a.printer.JSON(info)
	}
	a.printer.KeyValue("Name", info.FileName)
	a.printer.KeyValue("URL", info.FileURL)
	a.printer.KeyValue("Type", orDash(info.ContentType))
	a.printer.KeyValue("Size", humanize.IBytes(uint64(max(info.FileSize, 0))))
	a.printer.KeyValue("Exists", yesNo(info.Exists))
	return nil
}

func runFileURL(ctx context.Context, a *app, args []string) error {
	u, err := a.svc.Files.URL(ctx, args[0])
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return a.printer.JSON(map[string]string{"fileName": args[0], "url": u})
	}
	// Plain output so the URL can be captured by scripts
	fmt.Fprintln(a.printer.Out(), u)
	return nil
}

func runFileExists(ctx context.Context, a *app, args []string) error {
	ok, err := a.svc.Files.Exists(ctx, args[0])
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return a.printer.JSON(map[string]interface{}{"fileName": args[0], "exists": ok})
	}
	a.printer.Print("%s", yesNo(ok))
	return nil
}

func runFileDelete(ctx context.Context, a *app, args []string) error {
	if err := confirmDelete(a, "file "+args[0], fileYes); err != nil {
		return err
	}
	if err := a.svc.Files.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.printer.Success("Deleted %s", args[0])
	return nil
}
