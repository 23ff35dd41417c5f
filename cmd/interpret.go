package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/physiognomy/internal/evaluator"
	"github.com/kozaktomas/physiognomy/internal/interpret"
)

var interpretCmd = &cobra.Command{
	Use:   "interpret [landmarks.json]",
	Short: "Produce a narrative reading of a face",
	Long: `Analyze a landmark file and ask the configured provider for a narrative
reading. Gemini (GEMINI_API_KEY) is preferred, OpenAI (OPENAI_TOKEN) is tried
next. Without a provider, or when every provider fails, a fixed reading is
printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runInterpret,
}

func init() {
	rootCmd.AddCommand(interpretCmd)

	interpretCmd.Flags().String("name", "", "Full name of the person")
	interpretCmd.Flags().String("birthday", "", "Birth date, e.g. 1990-05-17")
	interpretCmd.Flags().String("gender", "", "Gender: MALE or FEMALE")
}

// interpretOutput is the printed result of the interpret command.
type interpretOutput struct {
	File      string                    `json:"file"`
	Person    interpret.Person          `json:"person"`
	Report    *evaluator.Report         `json:"report"`
	Tags      []string                  `json:"tags"`
	Interpret *interpret.Interpretation `json:"interpret"`
	Source    string                    `json:"source"`
	Fallback  bool                      `json:"fallback"`
}

func runInterpret(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	cat, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	result, err := analyzeFile(args[0], cat)
	if err != nil {
		return err
	}

	providers, err := interpret.NewProviders(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create interpretation provider: %w", err)
	}

	person := interpret.Person{
		Name:     mustGetString(cmd, "name"),
		Birthday: mustGetString(cmd, "birthday"),
		Gender:   mustGetString(cmd, "gender"),
	}
	reading := interpret.New(providers...).Interpret(cmd.Context(), result.Report, person)

	return writeJSON(cmd.OutOrStdout(), interpretOutput{
		File:      result.File,
		Person:    person,
		Report:    result.Report,
		Tags:      result.Tags,
		Interpret: reading.Interpretation,
		Source:    reading.Source,
		Fallback:  reading.Fallback,
	})
}
