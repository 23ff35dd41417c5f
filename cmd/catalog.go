package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate the rule catalog",
	Long:  `List the categories of the rule catalog. Use subcommands to show rules or validate a catalog file.`,
	RunE:  runCatalogList,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their rule counts",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [category]",
	Short: "Show the rules of one category",
	Long: `Show the rules of one category in evaluation order. The name is matched
ignoring case and Vietnamese diacritics.

Example:
  physiognomy catalog show mat
  physiognomy catalog show "Miệng Cằm"`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogShow,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a catalog file",
	Long: `Parse a catalog file and report inert rules. Without a path the active
catalog (--catalog, CATALOG_PATH or the embedded one) is validated. With
--strict any rule on an unknown metric is an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogValidate,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

func policyFor(cfg *config.Config) catalog.UnknownMetricPolicy {
	if cfg.Catalog.Strict {
		return catalog.Strict
	}
	return catalog.Lenient
}

// openCatalog loads the catalog selected by flags and environment.
func openCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Open(cfg.Catalog.Path, policyFor(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(loadConfig(cmd))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tRULES\tINERT")
	for _, c := range cat.Categories() {
		inert := 0
		for _, r := range c.Rules {
			if !r.Known() {
				inert++
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\n", c.Name, len(c.Rules), inert)
	}
	return w.Flush()
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(loadConfig(cmd))
	if err != nil {
		return err
	}

	c, ok := cat.Category(args[0])
	if !ok {
		return fmt.Errorf("category %q not found (available: %v)", args[0], cat.Names())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", c.Name)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONDITION\tTRAIT\tTAGS")
	for _, r := range c.Rules {
		condition := r.Condition()
		if !r.Known() {
			condition += " (inert)"
		}
		fmt.Fprintf(w, "%s\t%s\t%v\n", condition, r.Trait, r.Tags)
	}
	return w.Flush()
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if len(args) == 1 {
		cfg.Catalog.Path = args[0]
	}

	cat, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	source := cfg.Catalog.Path
	if source == "" {
		source = "embedded catalog"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d categories, %d rules\n", source, len(cat.Names()), len(cat.Rules()))

	unknown := cat.Unknown()
	if len(unknown) == 0 {
		fmt.Fprintln(out, "All rules reference implemented metrics.")
		return nil
	}
	fmt.Fprintf(out, "%d inert rules (metric not implemented):\n", len(unknown))
	for _, r := range unknown {
		fmt.Fprintf(out, "  %s: %s\n", r.Category, r.Metric)
	}
	return nil
}
