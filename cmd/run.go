package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/app"
	"github.com/kokostudy/koko/internal/config"
	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/goals"
	"github.com/kokostudy/koko/internal/llm"
	"github.com/kokostudy/koko/internal/logging"
	"github.com/kokostudy/koko/internal/notes"
	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/quiz"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/spacedrep"
	"github.com/kokostudy/koko/internal/store"
	"github.com/kokostudy/koko/internal/study"
	"github.com/kokostudy/koko/internal/ui/theme"
)

// env is everything a command needs once config, logger and store are up.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	profiles *profile.Service
	goals    *goals.Service
	notes    *notes.Service
	deps     screen.Deps
}

// setup loads the config, builds the logger, opens the store and wires
// the services for the configured user. When tui is set and no log file
// is configured, logs go to the default log file.
func setup(cmd *cobra.Command, tui bool) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.Options{
		ConfigFile: configFile,
		EnvFile:    envFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	if tui && cfg.Log.File == "" {
		if cfg.Log.File, err = logging.DefaultFile(); err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	dsn, err := cfg.Database.ResolveDSN()
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(cfg.Database.Driver, dsn, store.Options{MaxOpenConns: cfg.Database.MaxOpenConns})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("driver", cfg.Database.Driver))

	e, err := newEnv(cmd.Context(), cfg, log, st)
	if err != nil {
		st.Close()
		return nil, err
	}
	return e, nil
}

// newEnv loads the profile and builds the services on an open store.
func newEnv(ctx context.Context, cfg *config.Config, log *zap.Logger, st *store.Store) (*env, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	userID := cfg.User.ID
	profiles := profile.NewService(userID, st.ProfileRepo(), log)
	prof, err := profiles.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	th := theme.Resolve(prof.Gender)
	cards := flashcard.NewService(userID, st.CardRepo(), st.CourseRepo(), log)
	courses := course.NewService(userID, st.CourseRepo(), st.StudySessionRepo(), log)
	rw := rewards.NewService(userID, st.EventRepo(), st.CompanionRepo(), st.StatsRepo(), log).
		WithCatalog(th.Assets.Outfits)

	return &env{
		cfg:      cfg,
		log:      log,
		store:    st,
		profiles: profiles,
		goals:    goals.NewService(userID, st.GoalRepo(), courses, log),
		notes:    notes.NewService(userID, st.LearningRepo(), courses, log),
		deps: screen.Deps{
			Profile:   prof,
			Theme:     th,
			Cards:     cards,
			Courses:   courses,
			Rewards:   rw,
			Scheduler: spacedrep.NewScheduler(cfg.Review.IntervalStrategy()),
			Study:     study.NewService(userID, st.StudySessionRepo(), courses, rw, log),
			Quiz:      newQuiz(ctx, cfg.Quiz, cards, courses, log),
			Pomodoro:  study.PomodoroOf(cfg.Study.FocusMinutes, cfg.Study.BreakMinutes),
			Log:       log,
		},
	}, nil
}

// newQuiz builds the quiz service. A model that cannot be set up is
// logged and quizzes stay local.
func newQuiz(ctx context.Context, cfg config.QuizConfig, cards *flashcard.Service, courses *course.Service, log *zap.Logger) *quiz.Service {
	var remote *quiz.LLMGenerator
	if cfg.Remote() {
		p, err := llm.New(ctx, cfg.LLM(), log)
		if err != nil {
			log.Warn("quiz model unavailable, using local quizzes", zap.String("provider", cfg.Provider), zap.Error(err))
		} else {
			remote = quiz.NewLLMGenerator(p)
		}
	}
	return quiz.NewService(cards, courses, remote, cfg.Timeout, log).WithQuestions(cfg.Questions)
}

func (e *env) Close() {
	_ = e.log.Sync()
	e.store.Close()
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startInReview bool) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("starting tui",
		zap.String("user", e.cfg.User.ID),
		zap.String("theme", e.deps.Theme.Name),
		zap.Bool("review", startInReview),
	)
	return app.Run(app.Options{Deps: e.deps, StartInReview: startInReview})
}
