package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

var (
	debug      bool
	rulesPath  string
	dsn        string
	docPath    string
	candsPath  string
	filterName string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "hookcheck",
	Short: "Evaluate match hooks against parsed documents",
	Long: `hookcheck loads match rules (from a directory of match dicts or from Postgres),
compiles their match hooks and runs candidate spans of a parsed document through them.

Rules come from --rules (HOOKS_RULES_PATH) unless --db (HOOKS_DB_DSN) is set.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Accept/reject candidate spans and print the surviving matches as JSON",
	Example: `  hookcheck check --rules ./rules --doc doc.json --candidates candidates.json
  hookcheck check --db postgres://localhost/hooks --doc doc.json --candidates c.json --filter line_break`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), cmd.OutOrStdout(), checkOptions{
			RulesPath:  rulesPath,
			DSN:        dsn,
			DocPath:    docPath,
			CandsPath:  candsPath,
			FilterName: filterName,
			Debug:      debug,
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compile every rule and report hook usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), cmd.OutOrStdout(), rulesPath, dsn)
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load match dicts from --rules and store their hooks in Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), cmd.OutOrStdout(), rulesPath, dsn)
	},
}

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "List the registered match hook names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHooks(cmd.OutOrStdout())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debug, "debug", false, "debug logging and debug_hook on every rule")
	pf.StringVar(&rulesPath, "rules", getenv("HOOKS_RULES_PATH", "./rules"), "directory of match dict files")
	pf.StringVar(&dsn, "db", os.Getenv("HOOKS_DB_DSN"), "Postgres DSN; when set rules are read from the database")

	checkCmd.Flags().StringVar(&docPath, "doc", "", "parsed document (spaCy Doc.to_json output)")
	checkCmd.Flags().StringVar(&candsPath, "candidates", "", "JSON list of {match_name, start, end, suggestions}")
	checkCmd.Flags().StringVar(&filterName, "filter", "", "span filter: exact, line_break or none")
	_ = checkCmd.MarkFlagRequired("doc")
	_ = checkCmd.MarkFlagRequired("candidates")

	rootCmd.AddCommand(checkCmd, validateCmd, importCmd, hooksCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
