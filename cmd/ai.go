// ABOUTME: AI text generation command
// ABOUTME: Sends a prompt to the backend and prints the generated text

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/portfolio"
)

var promptFile string

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Generate text with the backend's AI assistant",
}

var aiGenerateCmd = &cobra.Command{
	Use:   "generate [PROMPT...]",
	Short: "Generate text from a prompt",
	Long: `Generate text from a prompt, for example a project description or a
blog summary. The prompt is taken from the arguments or from --file.

Example:
  portfolio ai generate "Summarize my Go projects in two sentences"
  cat notes.md | portfolio ai generate --file -`,
	Run: cobraRun(runGenerate),
}

func init() {
	aiGenerateCmd.Flags().StringVarP(&promptFile, "file", "f", "", "Read the prompt from a file, - for stdin")
	aiCmd.AddCommand(aiGenerateCmd)
	rootCmd.AddCommand(aiCmd)
}

// generateResult is the JSON shape of ai generate
type generateResult struct {
	Prompt string `json:"prompt"`
	Result string `json:"result"`
}

func runGenerate(ctx context.Context, a *app, args []string) error {
	prompt, err := readPrompt(a, args)
	if err != nil {
		return err
	}

	text, err := a.svc.AI.Generate(ctx, prompt)
	if errors.Is(err, portfolio.ErrEmptyPrompt) {
		return usageError("%v", err)
	}
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return a.printer.JSON(generateResult{Prompt: strings.TrimSpace(prompt), Result: text})
	}
	a.printer.Print("%s", text)
	return nil
}

func readPrompt(a *app, args []string) (string, error) {
	switch {
	case promptFile != "" && len(args) > 0:
		return "", usageError("use either a prompt argument or --file, not both")
	case promptFile == "-":
		b, err := io.ReadAll(a.in)
		return string(b), err
	case promptFile != "":
		b, err := os.ReadFile(promptFile)
		if err != nil {
			return "", usageError("cannot read %s: %v", promptFile, err)
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}
