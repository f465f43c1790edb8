package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"karmaforge/internal/analytics"
	"karmaforge/internal/cmdlog"
	"karmaforge/internal/config"
	"karmaforge/internal/discover"
	"karmaforge/internal/engage"
	"karmaforge/internal/events"
	"karmaforge/internal/jobs"
	"karmaforge/internal/metrics"
	"karmaforge/internal/model"
	"karmaforge/internal/oracle"
	"karmaforge/internal/pacing"
	"karmaforge/internal/quota"
	"karmaforge/internal/reddit"
	"karmaforge/internal/store/replylog"
	"karmaforge/internal/theme"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			abs, _ := filepath.Abs(path)
			theme.PrintBanner()
			fmt.Println("Config written to:", abs)
			return nil
		},
	}
	cmd.Flags().String("path", defaultConfigPath, "path to write config")
	return cmd
}

func newDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List reply candidates without posting (dry run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			emit := events.NewEmitter(events.NewJSONSink(os.Stdout))
			return cmdlog.Run("discover", emit, func() error {
				client := reddit.NewHTTPClient(credentials(cfg))
				d := discover.New(client, discoverOptions(cfg), emit, nil)

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				var candidates []model.Submission
				for s := range d.Discover(ctx) {
					candidates = append(candidates, s)
				}
				for i, sc := range model.RankByPotential(candidates, time.Now().UTC()) {
					fmt.Printf("%3d. [%.1f] r/%s %s (score %d, %d comments)\n",
						i+1, sc.Score, sc.Submission.Subreddit, sc.Submission.Title,
						sc.Submission.Score, sc.Submission.NumComments)
				}
				fmt.Printf("%d candidates\n", len(candidates))
				return nil
			})
		},
	}
	cmd.Flags().String("config", defaultConfigPath, "config path")
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a reply session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			loop, _ := cmd.Flags().GetBool("loop")
			interval, _ := cmd.Flags().GetDuration("interval")
			waitWindow, _ := cmd.Flags().GetBool("wait-window")

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			emit := events.NewEmitter(events.NewJSONSink(os.Stdout))
			return cmdlog.Run("run", emit, func() error {
				metrics.StartServer(cfg.Metrics.Addr)

				gen, err := oracle.New(cfg.Oracle)
				if err != nil {
					return err
				}
				client := reddit.NewHTTPClient(credentials(cfg))
				tracker := quota.New(cfg.Engagement.DailyLimit, nil)
				d := discover.New(client, discoverOptions(cfg), emit, nil)

				var rlog engage.ReplyLog
				if cfg.Storage.DBPath != "" {
					store, err := replylog.Open(cfg.Storage.DBPath)
					if err != nil {
						return fmt.Errorf("open reply log: %w", err)
					}
					defer store.Close()
					rlog = store
				}

				runner := engage.NewRunner(d, client, gen, tracker, rlog, emit,
					cfg.Oracle.Language, cfg.Engagement.MinDelaySeconds, cfg.Engagement.MaxDelaySeconds)

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				if waitWindow && len(cfg.Engagement.QuietHours) > 0 {
					next := pacing.NextActiveWindow(time.Now(), cfg.Engagement.QuietHours)
					if wait := time.Until(next); wait > 0 {
						emit.Info(fmt.Sprintf("quiet hours: waiting until %s", next.Format(time.RFC3339)), nil)
						select {
						case <-time.After(wait):
						case <-ctx.Done():
							return nil
						}
					}
				}

				if loop {
					err := jobs.RunSessionLoop(ctx, runner, emit, interval)
					if err == context.Canceled {
						return nil
					}
					return err
				}
				sum, err := jobs.RunSessionOnce(ctx, runner, emit)
				if err != nil {
					return err
				}
				fmt.Printf("replied=%d skipped=%d errored=%d\n", sum.Replied, sum.Skipped, sum.Errored)
				return nil
			})
		},
	}
	cmd.Flags().String("config", defaultConfigPath, "config path")
	cmd.Flags().Bool("loop", false, "keep running sessions on an interval")
	cmd.Flags().Duration("interval", time.Hour, "session interval when --loop is set")
	cmd.Flags().Bool("wait-window", false, "hold the session until outside configured quiet hours")
	return cmd
}

func newMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Show reply activity from the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			hours, _ := cmd.Flags().GetInt("hours")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cfg.Storage.DBPath == "" {
				return fmt.Errorf("no reply log configured (storage.dbPath is empty)")
			}
			store, err := replylog.Open(cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			end := time.Now().UTC()
			start := end.Add(-time.Duration(hours) * time.Hour)
			evts, err := store.LoadRange(context.Background(), start, end)
			if err != nil {
				return err
			}
			buckets := analytics.HourlyReplies(evts)
			for _, k := range analytics.SortedBucketKeys(buckets) {
				fmt.Printf("%s -> %d replies\n", k.Format("2006-01-02 15:00"), buckets[k])
			}
			for sub, n := range analytics.BySubreddit(evts) {
				fmt.Printf("r/%s: %d\n", sub, n)
			}
			fmt.Printf("total: %d replies in last %dh\n", len(evts), hours)
			return nil
		},
	}
	cmd.Flags().String("config", defaultConfigPath, "config path")
	cmd.Flags().Int("hours", 24, "lookback window in hours")
	return cmd
}

func credentials(cfg config.Config) reddit.Credentials {
	return reddit.Credentials{
		ClientID:     cfg.Credentials.ClientID,
		ClientSecret: cfg.Credentials.ClientSecret,
		Username:     cfg.Credentials.Username,
		Password:     cfg.Credentials.Password,
	}
}

func discoverOptions(cfg config.Config) discover.Options {
	return discover.Options{
		Subreddits:  cfg.Targets.Subreddits,
		FetchLimit:  cfg.Targets.FetchLimit,
		MinScore:    cfg.Filters.MinUpvotes,
		MinComments: cfg.Filters.MinComments,
		UpvoteMode:  cfg.Engagement.UpvoteMode,
	}
}
