package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hayate-io/kintai/internal/cache"
	"github.com/hayate-io/kintai/internal/config"
	"github.com/hayate-io/kintai/internal/csvfile"
	"github.com/hayate-io/kintai/internal/logging"
	"github.com/hayate-io/kintai/internal/model"
	"github.com/hayate-io/kintai/internal/normalize"
	"github.com/hayate-io/kintai/internal/recon"
	"github.com/hayate-io/kintai/internal/report"
	"github.com/hayate-io/kintai/internal/selfreport"
	"github.com/hayate-io/kintai/internal/session"
	"github.com/hayate-io/kintai/internal/store"
)

func main() {
	// Local overrides for development; absence is not an error.
	_ = godotenv.Load()

	var (
		month      = flag.String("month", time.Now().Format("2006-01"), "target month (YYYY-MM)")
		configPath = flag.String("config", config.DefaultPath(), "config file path")
		user       = flag.String("user", "", "filter self-reports to one user (default: all)")
		clearCache = flag.Bool("clear", false, "discard the local snapshot and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("kintai: %v", err)
	}
	logging.Init(logging.ParseLevel(cfg.Log.Level))

	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			slog.Warn("unknown timezone, using process local", "timezone", cfg.Timezone)
		} else {
			normalize.SetLocation(loc)
		}
	}

	snapshot := cache.New(cfg.Cache.Path)
	if *clearCache {
		if err := snapshot.Clear(); err != nil {
			log.Fatalf("kintai: clear cache: %v", err)
		}
		fmt.Println("ローカルキャッシュを削除しました")
		return
	}

	var client *store.Client
	if cfg.Store.URL != "" {
		client = store.New(cfg.Store.URL, store.WithTimeout(time.Duration(cfg.Store.Timeout)))
	} else {
		slog.Warn("store URL not configured, running offline")
	}

	if *user == "" {
		*user = cfg.User
	}

	if err := run(context.Background(), *month, *user, flag.Args(), snapshot, client); err != nil {
		log.Fatalf("kintai: %v", err)
	}
}

func run(ctx context.Context, month, user string, paths []string, snapshot *cache.Cache, client *store.Client) error {
	sess := session.New(month)
	out := report.New(os.Stdout, report.WithBalances(sess.Balance))

	if len(paths) > 0 {
		if err := ingest(ctx, paths, snapshot, client, sess, out); err != nil {
			return err
		}
	} else {
		resolve(ctx, snapshot, client, sess)
	}

	var self []model.Event
	if client != nil {
		records := client.ListRecords(ctx, user)
		var diag selfreport.Diagnostics
		self, diag = selfreport.Project(records, month)
		slog.Debug("projected self-reports", "records", len(records), "events", len(self), "dropped", diag.Dropped)

		sess.SetBalances(client.GetLeaveBalances(ctx))
	}

	ds := sess.Dataset()
	out.Summary(len(ds.Events), ds.FileCount, sess.Status())
	out.Diff(recon.Compare(sess.MonthEvents(), self))

	if client != nil {
		out.LateHistory(month, client.ListLateArrivals(ctx, month))
	}
	return nil
}

// ingest parses the given CSV files into a fresh reference dataset,
// persists it locally, and pushes it to the store best-effort.
func ingest(ctx context.Context, paths []string, snapshot *cache.Cache, client *store.Client, sess *session.Session, out *report.Renderer) error {
	batch := csvfile.ReadAll(paths)
	out.UploadErrors(batch.Errors)
	if batch.AllFailed {
		return errors.New("すべてのファイルの解析に失敗しました")
	}
	slog.Debug("parsed csv batch",
		"files", batch.FileCount, "records", len(batch.Records),
		"shortRows", batch.Skipped.ShortRows, "badDates", batch.Skipped.BadDates)

	ds := model.ReferenceDataset{
		Events:    batch.Records,
		Timestamp: time.Now(),
		FileCount: batch.FileCount,
	}
	if err := snapshot.Save(ds); err != nil {
		slog.Warn("cache save failed", "error", err)
	}

	status := cache.StatusSynced
	if client == nil || !client.PushReferenceDataset(ctx, ds.Events, ds.FileCount) {
		status = cache.StatusCommError
	}
	sess.ReplaceDataset(ds, status)
	return nil
}

// resolve loads the local snapshot, fetches the store's copy, and keeps
// whichever is newer.
func resolve(ctx context.Context, snapshot *cache.Cache, client *store.Client, sess *session.Session) {
	local, err := snapshot.Load()
	if err != nil {
		slog.Warn("cache unreadable, ignoring", "error", err)
	}

	var remote *model.ReferenceDataset
	if client != nil {
		remote = client.FetchReferenceDataset(ctx)
	}

	ds, status := cache.Resolve(local, remote)
	if status == cache.StatusUpdated {
		if err := snapshot.Save(ds); err != nil {
			slog.Warn("cache save failed", "error", err)
		}
	}
	sess.ReplaceDataset(ds, status)
}
