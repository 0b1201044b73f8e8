package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rebornlabs/wastelog/internal/auth"
	"github.com/rebornlabs/wastelog/internal/blobstore"
	"github.com/rebornlabs/wastelog/internal/feed"
	"github.com/rebornlabs/wastelog/internal/models"
	"github.com/rebornlabs/wastelog/internal/repositories"
	"github.com/rebornlabs/wastelog/internal/repositories/postgres"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "wastelog",
	Short: "Record and review household food-waste logs",
	Long:  `wastelog tracks food-waste entries per category (unavoidable, avoidable, food-related), keeps history in Postgres with photos in S3, and can export or stream the log feed.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./wastelog.yaml)")

	rootCmd.PersistentFlags().String("user", "", "User id owning the session")
	rootCmd.PersistentFlags().String("email", "", "Email of the session owner")
	viper.BindPFlag("auth.user_id", rootCmd.PersistentFlags().Lookup("user"))
	viper.BindPFlag("auth.email", rootCmd.PersistentFlags().Lookup("email"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wired collaborators every subcommand needs.
type app struct {
	cfg     *models.Config
	catalog models.Catalog
	pool    *pgxpool.Pool
	logs    *postgres.LogRepository
	users   *postgres.UserRepository
	auth    repositories.Authenticator
	events  repositories.EventPublisher
	logger  *slog.Logger

	publisher *feed.KafkaPublisher
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	authn := auth.NewLocalAuthenticator(cfg.Auth.UserID, cfg.Auth.Email)
	if !authn.IsSignedIn() {
		return nil, fmt.Errorf("no user configured, set --user or auth.user_id")
	}

	pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	logs := postgres.NewLogRepository(pool)
	users := postgres.NewUserRepository(pool)
	if err := logs.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := users.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		catalog: models.DefaultCatalog(),
		pool:    pool,
		logs:    logs,
		users:   users,
		auth:    authn,
		logger:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	if cfg.Kafka.Enabled {
		publisher, err := feed.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			pool.Close()
			return nil, err
		}
		a.publisher = publisher
		a.events = publisher
	}
	return a, nil
}

func (a *app) close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	a.pool.Close()
}

// blobStore wires the S3 uploader on demand; commands without photos or
// exports never touch AWS config.
func (a *app) blobStore(ctx context.Context) (repositories.BlobStore, error) {
	if a.cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("no S3 bucket configured")
	}
	return blobstore.NewS3Store(ctx, a.cfg.S3.Region, a.cfg.S3.Bucket, a.cfg.S3.Prefix)
}
