package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/apiscaffold/internal/engine"
	"github.com/danieljhkim/apiscaffold/internal/envfile"
	"github.com/danieljhkim/apiscaffold/internal/merger"
)

var (
	createTemplate       string
	createLanguage       string
	createFeatures       []string
	createForce          bool
	createDryRun         bool
	createSkipInstall    bool
	createSkipGit        bool
	createPackageManager string

	createDB envfile.DatabaseSettings
)

var createCmd = &cobra.Command{
	Use:   "create <directory>",
	Short: "Create a new project from a template",
	Long: `Create a new project in <directory> by merging template layers in order:

  1. <template>/base                (if the template has one)
  2. <template>/<language>/base
  3. <template>/<language>/<feature>  for each --feature, in the order given

Files from later layers replace files from earlier ones. Collected packages
are installed once all layers are merged, then a git repository is created
unless the directory is already inside one.`,
	Example: `  apiscaffold create my-api --template express.vanilla
  apiscaffold create my-api -t express.vanilla -l typescript -f cors -f sequelize --db-type postgres
  apiscaffold create my-api -t express.vanilla --dry-run --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		manager := settings.PackageManager
		if flags.Changed("package-manager") {
			manager = createPackageManager
		}
		skipInstall := settings.SkipInstall
		if flags.Changed("skip-install") {
			skipInstall = createSkipInstall
		}
		skipGit := settings.SkipGit
		if flags.Changed("skip-git") {
			skipGit = createSkipGit
		}

		eng, err := newEngine(settings, manager)
		if err != nil {
			return err
		}

		req := &engine.CreateRequest{
			Destination: args[0],
			Template:    createTemplate,
			Language:    createLanguage,
			Features:    createFeatures,
			Force:       createForce,
			DryRun:      createDryRun,
			SkipInstall: skipInstall,
			SkipGit:     skipGit,
		}
		if createDB.Type != "" {
			db := createDB
			req.Database = &db
		}

		result, err := eng.Create(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		printCreateResult(result, settings.Verbose)
		return nil
	},
}

func printCreateResult(result *engine.CreateResult, listFiles bool) {
	if result.DryRun {
		PrintSection("Dry Run")
		PrintInfo(fmt.Sprintf("Would merge %s into %s",
			PrintCount(len(result.Roots), "layer", "layers"), result.Destination))
	} else {
		PrintSection("Layers")
	}

	layers := make([]string, 0, len(result.Roots))
	for _, root := range result.Roots {
		layers = append(layers, fmt.Sprintf("%s (%s)", root.Layer, root.Path))
	}
	PrintNumberedList(layers, 1)

	if result.DryRun || result.Assembly == nil {
		return
	}

	entries := result.Assembly.Entries()
	if listFiles {
		PrintSection("Files")
		for _, e := range entries {
			PrintEntry(e.Action, e.RelPath)
		}
	}

	var created, replaced, patched int
	for _, e := range entries {
		switch e.Action {
		case merger.ActionCreated:
			created++
		case merger.ActionReplaced:
			replaced++
		case merger.ActionPatched:
			patched++
		}
	}

	deps := result.Assembly.Deps
	PrintSection("Summary")
	PrintLabelValue("Template", fmt.Sprintf("%s (%s)", result.Template, result.Language))
	PrintLabelValue("Files", fmt.Sprintf("%d created, %d replaced, %d patched", created, replaced, patched))
	if len(deps.Dependencies) > 0 {
		PrintLabelValue("Dependencies", strings.Join(deps.Dependencies, " "))
	}
	if len(deps.DevDependencies) > 0 {
		PrintLabelValue("Dev dependencies", strings.Join(deps.DevDependencies, " "))
	}
	if result.EnvFile != "" {
		PrintLabelValue("Env file", result.EnvFile)
	}
	_, _ = fmt.Fprintln(out)

	if !deps.Empty() && !result.Installed {
		PrintWarning("Dependencies were not installed")
	}
	if result.GitInitialized {
		PrintSuccess("Initialized git repository")
	}
	PrintSuccess(fmt.Sprintf("Created project in %s", result.Destination))
}

func init() {
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Template ID, e.g. express.vanilla")
	createCmd.Flags().StringVarP(&createLanguage, "language", "l", "", "Language variant (template default if omitted)")
	createCmd.Flags().StringSliceVarP(&createFeatures, "feature", "f", nil, "Feature layer to add (repeatable, applied in order)")
	createCmd.Flags().BoolVar(&createForce, "force", false, "Create even if the directory is not empty")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Show the layers that would be merged without writing")
	createCmd.Flags().BoolVar(&createSkipInstall, "skip-install", false, "Do not install collected dependencies")
	createCmd.Flags().BoolVar(&createSkipGit, "skip-git", false, "Do not initialize a git repository")
	createCmd.Flags().StringVarP(&createPackageManager, "package-manager", "p", "npm", "Package manager (npm, pnpm or yarn)")

	createCmd.Flags().StringVar(&createDB.Type, "db-type", "",
		fmt.Sprintf("Database type (%s); requires the %s feature", strings.Join(envfile.DatabaseTypes(), ", "), engine.DatabaseFeature))
	createCmd.Flags().StringVar(&createDB.Path, "db-path", "", "SQLite storage path (default "+envfile.DefaultSQLitePath+")")
	createCmd.Flags().StringVar(&createDB.Host, "db-host", "", "Database host (default "+envfile.DefaultHost+")")
	createCmd.Flags().IntVar(&createDB.Port, "db-port", 0, "Database port (default depends on --db-type)")
	createCmd.Flags().StringVar(&createDB.User, "db-user", "", "Database user (default "+envfile.DefaultUser+")")
	createCmd.Flags().StringVar(&createDB.Password, "db-password", "", "Database password")
	createCmd.Flags().StringVar(&createDB.Database, "db-database", "", "Database name")

	_ = createCmd.MarkFlagRequired("template")
}
