package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/voca/internal"
)

// Actions are the run functions behind the commands. A nil action leaves
// the command without a RunE.
type Actions struct {
	Study  func(cmd *cobra.Command, args []string) error
	Next   func(cmd *cobra.Command, args []string) error
	Words  func(cmd *cobra.Command, args []string) error
	Models func(cmd *cobra.Command, args []string) error
}

// CreateRootCommand creates and configures the root cobra command and its
// subcommands
func CreateRootCommand(flags *Flags, actions Actions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voca",
		Short: "Random English vocabulary flashcards",
		Long: `voca shows a random English word together with its translation
and dictionary definition, and lets you flip through new words.

Examples:
  voca                          # Interactive study session
  voca next                     # Print one card and exit
  voca --dictionary optional    # Keep going when a word has no definition
  voca --offline-seed           # Study the built-in seed words without network`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          actions.Study,
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "next",
			Short: "Fetch one random word, print its card and exit",
			Args:  cobra.NoArgs,
			RunE:  actions.Next,
		},
		&cobra.Command{
			Use:   "words",
			Short: "Print the active word list",
			Args:  cobra.NoArgs,
			RunE:  actions.Words,
		},
		&cobra.Command{
			Use:   "models",
			Short: "List OpenAI chat models usable for translation",
			Args:  cobra.NoArgs,
			RunE:  actions.Models,
		},
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags, shared by every subcommand
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.voca.yaml)")
	pf.StringVarP(&flags.WordsFile, "words-file", "w", "", "Word list file, one word per line (default: built-in list)")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error, off")
	pf.BoolVar(&flags.OfflineSeed, "offline-seed", false, "Use the built-in seed words and translations, no network")

	// Lookup flags
	pf.StringVarP(&flags.Provider, "provider", "p", flags.Provider, "Translation provider: mymemory, openai, gemini")
	pf.StringVar(&flags.LangPair, "lang-pair", flags.LangPair, "Translation direction as source|target")
	pf.StringVar(&flags.Dictionary, "dictionary", flags.Dictionary, "Dictionary lookup: required, optional, off")
	pf.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout per network request")
	pf.BoolVar(&flags.Breaker, "breaker", flags.Breaker, "Fail fast while an endpoint keeps failing")
	pf.StringVar(&flags.DictionaryURL, "dictionary-url", "", "Dictionary endpoint override")
	pf.StringVar(&flags.MyMemoryURL, "mymemory-url", "", "MyMemory endpoint override")

	// Model flags
	pf.StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model used with --provider openai")
	pf.StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used with --provider gemini")

	// Study flags
	cmd.Flags().BoolVarP(&flags.ShowMeaning, "show-meaning", "m", false, "Reveal the translation right away")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("words.file", pf.Lookup("words-file"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("translation.provider", pf.Lookup("provider"))
	viper.BindPFlag("translation.lang_pair", pf.Lookup("lang-pair"))
	viper.BindPFlag("translation.openai_model", pf.Lookup("openai-model"))
	viper.BindPFlag("translation.gemini_model", pf.Lookup("gemini-model"))
	viper.BindPFlag("translation.mymemory_url", pf.Lookup("mymemory-url"))
	viper.BindPFlag("dictionary.mode", pf.Lookup("dictionary"))
	viper.BindPFlag("dictionary.url", pf.Lookup("dictionary-url"))
	viper.BindPFlag("http.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("http.breaker", pf.Lookup("breaker"))
	viper.BindPFlag("study.show_meaning", cmd.Flags().Lookup("show-meaning"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".voca" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".voca")
	}

	// Environment variables, e.g. VOCA_TRANSLATION_PROVIDER
	viper.SetEnvPrefix("VOCA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("translation.gemini_key")
}
