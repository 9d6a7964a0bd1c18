package engine

import "github.com/danieljhkim/apiscaffold/internal/envfile"

// CreateRequest represents a request to scaffold a new project.
type CreateRequest struct {
	// Destination is the project directory to create
	Destination string

	// Template is the template ID, with or without the leading "@"
	Template string

	// Language selects the technology variant (template default if empty)
	Language string

	// Features are optional feature layers, applied in this order
	Features []string

	// Database configures .env; nil means no database
	Database *envfile.DatabaseSettings

	// Force allows writing into a non-empty destination
	Force bool

	// DryRun resolves layers only without making changes
	DryRun bool

	// SkipInstall skips package installation
	SkipInstall bool

	// SkipGit skips git initialization
	SkipGit bool
}

// DatabaseFeature is the feature layer that carries database support.
const DatabaseFeature = "sequelize"
