package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wuterminal/wuterm/internal/config"
	"github.com/wuterminal/wuterm/internal/pipeline"
	"github.com/wuterminal/wuterm/internal/server"
	"github.com/wuterminal/wuterm/internal/store"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "wuterm",
	Short:   "Daily digital zen aphorisms",
	Long:    "wuterm watches trending topics across Weibo, news, and Twitter, and distills them into a daily aphorism and pending social posts.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("wuterm", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/wuterm/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure news feeds; set ANTHROPIC_API_KEY and TWITTER_API_KEY in the environment.")
		return nil
	},
}

// --- run command ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate today's entry from the current trending sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("=== 悟 Terminal - 每日生成 ===")

		pipe := pipeline.New(cfg)
		entry, err := pipe.RunDaily(context.Background(), time.Now())
		if err != nil {
			return err
		}

		fmt.Println("\n=== 生成结果 ===")
		fmt.Println(entry.Content)
		fmt.Printf("\n字数: %d\n", len([]rune(entry.Content)))
		fmt.Printf("ID: %s\n", entry.ID)
		fmt.Printf("已保存到 %s\n", cfg.EntryFile())
		return nil
	},
}

// --- post command ---

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Draft a social post from the latest entry and current trends",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("=== 悟 Terminal - 推文生成器 ===")

		pipe := pipeline.New(cfg)
		post, err := pipe.RunPost(context.Background(), time.Now())
		if err != nil {
			return err
		}

		fmt.Println("\n=== 生成的推文 ===")
		fmt.Println(post.Content)
		fmt.Printf("\n字数: %d/280\n", post.CharCount)
		fmt.Printf("ID: %s\n", post.ID)
		fmt.Printf("已保存到 %s\n", cfg.PostFile())
		fmt.Println("\n复制上面的内容手动发布，或查看 pending-posts.json 获取历史草稿。")
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local archive viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(
			store.NewEntryStore(cfg.EntryFile()),
			store.NewPostStore(cfg.PostFile()),
			port,
		)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// --- status command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection status",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := store.NewEntryStore(cfg.EntryFile()).Load()
		posts := store.NewPostStore(cfg.PostFile()).Load()

		fmt.Println("Entries:")
		fmt.Printf("  Total: %d\n", len(entries))
		if latest := store.Latest(entries); latest != nil {
			fmt.Printf("  Latest: %s (%s)\n", latest.Date, latest.ID)
		} else {
			fmt.Println("  Latest: none")
		}

		unposted := 0
		for _, p := range posts {
			if !p.Posted {
				unposted++
			}
		}
		fmt.Println("\nPending posts:")
		fmt.Printf("  Total: %d\n", len(posts))
		fmt.Printf("  Unposted: %d\n", unposted)

		fmt.Printf("\nData dir: %s\n", cfg.GetDataDir())
		return nil
	},
}

// --- recent command ---

var recentCount int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Print the most recent entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := store.NewEntryStore(cfg.EntryFile()).Load()
		recent := store.Recent(entries, recentCount)

		if len(recent) == 0 {
			fmt.Println("No entries yet. Run 'wuterm run' to generate one.")
			return nil
		}

		for _, e := range recent {
			fmt.Printf("--- %s ---\n%s\n\n", e.Date, e.Content)
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVarP(&recentCount, "count", "n", 10, "Number of entries to print")
}
