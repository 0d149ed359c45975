package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/domain/action"
	"github.com/questx-lab/rewards/internal/domain/badge"
	"github.com/questx-lab/rewards/internal/domain/challenge"
	"github.com/questx-lab/rewards/internal/domain/streak"
	"github.com/questx-lab/rewards/internal/domain/xp"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/database"
	"github.com/questx-lab/rewards/pkg/idutil"
	"github.com/questx-lab/rewards/pkg/kafka"
	"github.com/questx-lab/rewards/pkg/logger"
	"github.com/questx-lab/rewards/pkg/pubsub"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/questx-lab/rewards/pkg/xredis"
	"github.com/urfave/cli/v2"
)

type srv struct {
	ctx     context.Context
	configs config.Configs
	catalog *catalog.Catalog

	redisClient xredis.Client
	locker      action.UserLocker
	publisher   pubsub.Publisher
	stopper     func(context.Context) error

	ledgerRepo        repository.XPLedgerRepository
	streakRepo        repository.StreakRepository
	userBadgeRepo     repository.UserBadgeRepository
	userChallengeRepo repository.UserChallengeRepository
	counterRepo       repository.ActivityCounterRepository
	actionLogRepo     repository.ActionLogRepository

	ledger           *xp.Ledger
	streakTracker    *streak.Tracker
	badgeManager     *badge.Manager
	challengeTracker *challenge.Tracker
	dispatcher       *action.Dispatcher
}

func (s *srv) before(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	s.configs = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	if err := idutil.Init(cfg.Gamification.NodeID); err != nil {
		return err
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(cfg.Env, level))
	return nil
}

func (s *srv) after(*cli.Context) error {
	if s.stopper != nil {
		return s.stopper(s.ctx)
	}

	return nil
}

func (s *srv) loadDatabase() error {
	db, err := database.Open(s.configs.Database, s.configs.LogLevel == "debug")
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) loadCatalog() error {
	var err error
	s.catalog, err = catalog.LoadFile(
		s.configs.Gamification.CatalogFile, s.configs.Gamification.Location())
	return err
}

// loadRedis connects to redis if it is configured. Without redis, the
// leaderboard is not cached and users are only locked in this process.
func (s *srv) loadRedis() {
	s.locker = action.NewLocalLocker()
	if s.configs.Redis.Addr == "" {
		return
	}

	client, err := xredis.NewClient(s.ctx, s.configs.Redis.Addr)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, continue without it: %v", err)
		return
	}

	s.redisClient = client
	s.locker = action.NewRedisLocker(client.Raw())
}

func (s *srv) loadPublisher() {
	addrs := kafka.SplitAddrs(s.configs.Kafka.Addr)
	if len(addrs) == 0 {
		return
	}

	publisher, err := kafka.NewPublisher(s.configs.Kafka.ClientID, addrs)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to kafka, reward events are disabled: %v", err)
		return
	}

	s.publisher = publisher
	s.stopper = publisher.Stop
}

func (s *srv) loadRepos() {
	s.ledgerRepo = repository.NewXPLedgerRepository()
	s.streakRepo = repository.NewStreakRepository()
	s.userBadgeRepo = repository.NewUserBadgeRepository()
	s.userChallengeRepo = repository.NewUserChallengeRepository()
	s.counterRepo = repository.NewActivityCounterRepository()
	s.actionLogRepo = repository.NewActionLogRepository()
}

func (s *srv) loadDomains() {
	s.ledger = xp.NewLedger(s.ledgerRepo)
	s.streakTracker = streak.NewTracker(s.streakRepo)
	s.badgeManager = badge.NewManager(
		s.catalog,
		s.userBadgeRepo,
		s.counterRepo,
		s.ledger,
		s.streakTracker,
		badge.DefaultScanners()...,
	)

	s.challengeTracker = challenge.NewTracker(
		s.catalog, s.userChallengeRepo, s.ledger, s.badgeManager, s.redisClient)

	s.dispatcher = action.NewDispatcher(
		s.ledger,
		s.streakTracker,
		s.badgeManager,
		s.challengeTracker,
		s.counterRepo,
		s.actionLogRepo,
		s.publisher,
		s.locker,
	)
}

// loadEngine loads everything needed to process actions.
func (s *srv) loadEngine() error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadCatalog(); err != nil {
		return err
	}

	s.loadRedis()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
