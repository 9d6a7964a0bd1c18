package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/apiscaffold/internal/catalog"
	"github.com/danieljhkim/apiscaffold/internal/fsops"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"ls"},
	Short:   "List available templates",
	Long: `Display every template in the catalog with its languages and features.

The catalog directory defaults to ~/.apiscaffold/templates and can be changed
with --templates-dir, templates_dir in config.yaml or APISCAFFOLD_TEMPLATES_DIR.
The default directory is filled with the built-in templates on first use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		cat := catalog.NewFileCatalog(fsops.NewRealFS(), settings.TemplatesDir)
		ids, err := cat.List()
		if err != nil {
			return err
		}

		templates := make([]*catalog.Template, 0, len(ids))
		for _, id := range ids {
			tmpl, err := cat.Load(id)
			if err != nil {
				return err
			}
			templates = append(templates, tmpl)
		}

		if jsonOutput {
			return outputJSON(templates)
		}

		PrintSection("Templates")
		if len(templates) == 0 {
			PrintEmptyState("No templates found in " + cat.Dir())
			return nil
		}

		rows := make([][]string, 0, len(templates))
		for _, tmpl := range templates {
			for _, lang := range tmpl.Languages {
				rows = append(rows, []string{
					tmpl.ID,
					lang,
					strings.Join(tmpl.Features[lang], ", "),
					tmpl.Meta.Description,
				})
			}
		}
		PrintTable([]string{"Template", "Language", "Features", "Description"}, rows)
		return nil
	},
}
