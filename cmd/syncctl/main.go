package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/placementcell/go-talent/internal/config"
	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/platform"
	"github.com/placementcell/go-talent/internal/platform/codechef"
	"github.com/placementcell/go-talent/internal/platform/codeforces"
	"github.com/placementcell/go-talent/internal/platform/github"
	"github.com/placementcell/go-talent/internal/platform/leetcode"
	"github.com/placementcell/go-talent/internal/platform/linkedin"
	"github.com/placementcell/go-talent/internal/queue"
	"github.com/placementcell/go-talent/internal/syncer"
)

// syncctl syncs one candidate's linked platforms from the command
// line, either directly (printing the report) or by enqueueing a
// request for the worker service.
func main() {
	log.SetFlags(log.LstdFlags)

	var (
		candidateID  = flag.String("candidate", "", "candidate ID to sync (required)")
		githubUser   = flag.String("github", "", "GitHub username")
		leetcodeUser = flag.String("leetcode", "", "LeetCode username")
		cfUser       = flag.String("codeforces", "", "Codeforces handle")
		ccUser       = flag.String("codechef", "", "CodeChef username")
		linkedinURL  = flag.String("linkedin", "", "LinkedIn profile URL or username")
		enqueue      = flag.Bool("enqueue", false, "push a sync request to the queue instead of syncing inline")
		timeout      = flag.Duration("timeout", 2*time.Minute, "overall sync timeout")
	)
	flag.Parse()

	if *candidateID == "" {
		log.Println("missing -candidate")
		flag.Usage()
		os.Exit(2)
	}

	identities := domain.Identities{
		GitHub:     *githubUser,
		LeetCode:   *leetcodeUser,
		Codeforces: *cfUser,
		CodeChef:   *ccUser,
		LinkedIn:   *linkedinURL,
	}
	if identities.Count() == 0 {
		log.Println("no platform handles given")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *enqueue {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}

		publisher := queue.NewPublisher(rdb, cfg.Redis.SyncQueue)
		req := domain.NewSyncRequest(*candidateID, identities)
		if err := publisher.Publish(ctx, req); err != nil {
			log.Fatalf("Publish failed: %v", err)
		}
		log.Printf("Enqueued sync request %s for candidate %s (%d platforms)",
			req.ID, req.CandidateID, identities.Count())
		return
	}

	adapterCfg := platform.Config{
		UserAgent:    cfg.Fetcher.UserAgent,
		Timeout:      cfg.Fetcher.TimeoutMS,
		RequestDelay: cfg.Fetcher.RequestDelayMS,
	}
	registry := platform.NewRegistry(
		github.New(adapterCfg),
		leetcode.New(adapterCfg),
		codeforces.New(adapterCfg),
		codechef.New(adapterCfg),
		linkedin.New(),
	)

	report := syncer.New(registry).SyncAll(ctx, *candidateID, identities)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Marshal report: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.WriteString("\n")

	if report.Failed() {
		os.Exit(1)
	}
}
