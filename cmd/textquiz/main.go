package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	textquiz "github.com/lucseghers/quiz-from-user-text"
)

const defaultTemplate = "quiz-template.h5p"

var (
	inputPath    string
	templatePath string
	outputDir    string
	language     string
	model        string
	timeout      time.Duration
	retries      int
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "textquiz",
	Short: "Convert pasted multiple-choice questions into an H5P quiz package",
	Long: `textquiz reads free-form text containing multiple-choice questions
(numbered lists, bullet points, plain prose), asks a Gemini model to recover
the question structure, and merges the result into an H5P template package.

The template's styling and behaviour settings are preserved; only its question
list is replaced. The Gemini API key is read from GEMINI_API_KEY.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "file with the pasted questions (default: stdin)")
	rootCmd.Flags().StringVarP(&templatePath, "template", "t", "", "H5P template package (default: "+defaultTemplate+" in the working directory)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory for the generated package")
	rootCmd.Flags().StringVarP(&language, "language", "l", "Dutch", "language the pasted questions are written in (never translated)")
	rootCmd.Flags().StringVarP(&model, "model", "m", textquiz.DefaultModel, "Gemini model to use")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "extraction call timeout")
	rootCmd.Flags().IntVar(&retries, "retries", 2, "extraction retry attempts")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	viper.SetEnvPrefix("TEXTQUIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	viper.BindPFlag("language", rootCmd.Flags().Lookup("language"))
	viper.BindEnv("api_key", "GEMINI_API_KEY")
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)

	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		return fmt.Errorf("no API key: set GEMINI_API_KEY")
	}

	rawText, err := readInput(inputPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(rawText) == "" {
		return fmt.Errorf("no input text: paste the multiple-choice questions on stdin or pass --input")
	}

	template, err := readTemplate(templatePath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	clients := textquiz.NewClients(textquiz.Config{APIKey: apiKey})
	client, err := clients.GenAI(ctx)
	if err != nil {
		return err
	}

	logger.Info("analysing pasted text", "model", viper.GetString("model"), "language", viper.GetString("language"))
	ex := textquiz.NewExtractorWithLogger(client, textquiz.DefaultPrompts(), logger)
	records, err := ex.Extract(ctx, rawText, viper.GetString("language"),
		textquiz.WithModel(viper.GetString("model")),
		textquiz.WithTimeout(timeout),
		textquiz.WithRetry(retries, time.Second),
	)
	if err != nil {
		var extractionErr *textquiz.ExtractionError
		if errors.As(err, &extractionErr) {
			return fmt.Errorf("the model's answer could not be parsed; try again or rephrase the input: %w", err)
		}
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no structured questions found in the pasted text;\n" +
			"make sure every question clearly lists the question, the 4 answers,\n" +
			"and the correct answer (or its index/letter)")
	}
	logger.Info("received structured questions", "count", len(records))

	fmt.Println(textquiz.FormatPreview(records))

	result, err := textquiz.Merge(template, records)
	if err != nil {
		var formatErr *textquiz.TemplateFormatError
		if errors.As(err, &formatErr) {
			return fmt.Errorf("check the template file: %w", err)
		}
		return err
	}
	for _, flag := range result.Flags {
		logger.Warn("degraded question", "detail", flag.String())
	}

	outputName := fmt.Sprintf("quiz-from-text-%s.h5p", uuid.NewString()[:8])
	outputPath := filepath.Join(outputDir, outputName)
	if err := os.WriteFile(outputPath, result.Archive, 0o644); err != nil {
		return fmt.Errorf("write output package: %w", err)
	}

	logger.Info("created H5P quiz", "path", outputPath, "questions", len(records))
	return nil
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func readTemplate(path string) ([]byte, error) {
	if path == "" {
		path = defaultTemplate
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s not found in the working directory and no --template given", defaultTemplate)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return data, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
