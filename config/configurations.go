// Package config provides configuration management for classroom-helper.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// CfgFile specifies the configuration file path
	CfgFile string

	// Version is dynamically set at build time using the -X linker flag.
	Version = "dev"
)

// Option keys recognised across file, environment (prefix CLASSROOM_) and flags.
const (
	Organization   = "organization"
	Prefix         = "prefix"
	Students       = "students"
	Workspace      = "workspace"
	Template       = "template"
	TemplateBranch = "template-branch"
	Result         = "result"
	Grader         = "grader"
	BeforeGrader   = "before-grader"
	Diff           = "diff"
	Copy           = "copy"
	Deadline       = "deadline"

	FetchWorkers    = "fetch-workers"
	ChannelBuffer   = "channel-buffer"
	GithubUser      = "github-user"
	GithubHost      = "github-host"
	GithubAuthToken = "auth-token"

	// CloneSSHURLTmpl is the SSH URL template with placeholders: User, Host, Org/Repo
	CloneSSHURLTmpl = "%s@%s:%s/%s.git"
)

// Init reads in config file and ENV variables if set.
func Init(ctx context.Context) context.Context {
	v := New()

	if CfgFile != "" {
		v.SetConfigFile(CfgFile)
	} else {
		v.SetConfigName("classroom-helper")
		v.AddConfigPath(".")

		if usrConfig, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(usrConfig)
		}

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(xdgConfigHome)
		} else if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config"))
		}
	}

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %v\n\n", v.ConfigFileUsed())
	}

	return SetViper(ctx, v)
}

// New creates a new Viper instance with default configuration.
func New() *viper.Viper {
	v := viper.NewWithOptions(viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")))
	v.SetEnvPrefix("CLASSROOM")
	v.AutomaticEnv()
	setDefaults(v)

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(GithubUser, "git")
	v.SetDefault(GithubHost, "github.com")
	v.SetDefault(TemplateBranch, "master")

	v.SetDefault(Workspace, "workspace")
	v.SetDefault(Students, "students.csv")
	v.SetDefault(Result, "result.csv")

	v.SetDefault(FetchWorkers, 4)
	v.SetDefault(ChannelBuffer, 100)

	v.SetDefault(Copy, []string{})
}
