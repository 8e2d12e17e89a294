package ciutil

import "os"

// Environment variables consulted by this package.
const (
	EnvCI               = "CI"
	EnvGitHubActions    = "GITHUB_ACTIONS"
	EnvGitHubWorkspace  = "GITHUB_WORKSPACE"
	EnvGitLabCI         = "GITLAB_CI"
	EnvGitLabProjectDir = "CI_PROJECT_DIR"

	// EnvProjectRoot overrides project root detection.
	EnvProjectRoot = "TASK_API_PROJECT_ROOT"

	// EnvTerratestEnabled must be "1" for container smoke tests to run.
	EnvTerratestEnabled = "TERRATEST_ENABLED"
)

// IsCI returns true if the current environment is a CI environment.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != ""
}

// IsGitHubActions returns true if the current environment is GitHub Actions.
func IsGitHubActions() bool {
	return os.Getenv(EnvGitHubActions) != "" && os.Getenv(EnvGitHubWorkspace) != ""
}

// IsGitLabCI returns true if the current environment is GitLab CI.
func IsGitLabCI() bool {
	return os.Getenv(EnvGitLabCI) != "" && os.Getenv(EnvGitLabProjectDir) != ""
}

// TerratestEnabled reports whether container smoke tests were requested.
func TerratestEnabled() bool {
	return os.Getenv(EnvTerratestEnabled) == "1"
}
