package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KwaminaWhyte/esimbridge/internal/utils"
	"github.com/KwaminaWhyte/esimbridge/pkg/agent"
	"github.com/KwaminaWhyte/esimbridge/pkg/esim"
	"github.com/KwaminaWhyte/esimbridge/pkg/platforms/android"
	"github.com/KwaminaWhyte/esimbridge/pkg/platforms/ios"
	"github.com/KwaminaWhyte/esimbridge/pkg/platforms/noop"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "esimbridge",
	Short: "A uniform eSIM management surface for attached handsets.",
	Long: `esimbridge talks to the companion agent on an attached handset and
exposes device eSIM capability, active cellular plans and the native
install flow through one platform-agnostic surface.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.esimbridge.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("agent", "a", "", "Base URL of the on-device companion agent (overrides agent.url)")
	rootCmd.PersistentFlags().StringP("platform", "p", "", "Force platform: android, ios, none (default: probe the agent)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".esimbridge")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("esimbridge")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.esimbridge.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("agent.url", "http://127.0.0.1:8722")
	viper.SetDefault("agent.timeout_ms", 15000)
	viper.SetDefault("platform", "")
	viper.SetDefault("serve.listen", ":8090")
	viper.SetDefault("db.path", "esimbridge.sqlite")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

func agentClient() *agent.Client {
	url, _ := rootCmd.PersistentFlags().GetString("agent")
	if url == "" {
		url = viper.GetString("agent.url")
	}
	timeout := time.Duration(viper.GetInt("agent.timeout_ms")) * time.Millisecond
	return agent.New(url, timeout)
}

// newBridge picks the platform bridge: an explicit --platform/config value
// wins, otherwise the agent is asked what it is attached to. Hosts without a
// reachable agent degrade to the noop bridge.
func newBridge(ctx context.Context) esim.Bridge {
	platform, _ := rootCmd.PersistentFlags().GetString("platform")
	if platform == "" {
		platform = viper.GetString("platform")
	}

	c := agentClient()
	switch platform {
	case "android":
		return android.NewAgentBridge(c)
	case "ios":
		return ios.NewAgentBridge(c)
	case "none":
		return noop.New()
	case "":
		info, err := c.OS(ctx)
		if err != nil {
			utils.Log.Warnf("no companion agent reachable, degrading to host defaults: %v", err)
			return noop.New()
		}
		if info.Platform == esim.PlatformIOS {
			return ios.NewAgentBridge(c)
		}
		return android.NewAgentBridge(c)
	default:
		utils.Log.Fatalf("unknown platform %q (want android, ios or none)", platform)
		return nil
	}
}
