package di

import (
	"fmt"

	"gorm.io/gorm"

	"todosync/application/serviceimpl"
	"todosync/domain/ports"
	"todosync/domain/repositories"
	"todosync/domain/services"
	natspkg "todosync/infrastructure/nats"
	"todosync/infrastructure/postgres"
	redispkg "todosync/infrastructure/redis"
	"todosync/pkg/config"
	"todosync/pkg/logger"
	"todosync/pkg/scheduler"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redispkg.Client // optional
	NATSClient  *natspkg.Client  // optional

	// Ports
	TaskCache     ports.TaskCachePort // nil when Redis disabled
	EventPort     ports.TaskEventPort // nil when NATS disabled
	EventSchedule scheduler.EventScheduler

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Services
	UserService services.UserService
	TaskService services.TaskService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	return logger.Init(logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	})
}

func (c *Container) initInfrastructure() error {
	db, err := postgres.NewDatabase(c.Config.Database)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	// Redis and NATS are optional: the API is fully functional without
	// them, just without list caching and event publishing.
	if c.Config.Redis.Enabled {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, task list cache disabled", "error", err)
		} else {
			c.RedisClient = redisClient
			c.TaskCache = redispkg.NewTaskCache(redisClient, c.Config.Redis.ListTTL)
		}
	}

	if c.Config.NATS.Enabled {
		natsClient, err := natspkg.NewClient(c.Config.NATS)
		if err != nil {
			logger.Warn("NATS unavailable, task events disabled", "error", err)
		} else {
			c.NATSClient = natsClient
			c.EventPort = natspkg.NewPublisher(natsClient)
		}
	}

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
}

func (c *Container) initServices() {
	c.UserService = serviceimpl.NewUserService(c.UserRepository)
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.TaskCache, c.EventPort)
}

func (c *Container) initScheduler() error {
	// Reminder sweep only makes sense with an event sink.
	if !c.Config.Scheduler.Enabled || c.EventPort == nil {
		return nil
	}

	c.EventSchedule = scheduler.NewEventScheduler()

	reminder := serviceimpl.NewReminderService(c.TaskRepository, c.EventPort, c.Config.Scheduler.ReminderWindow)
	if err := c.EventSchedule.AddJob("due-soon-reminders", c.Config.Scheduler.ReminderCron, reminder.Sweep); err != nil {
		return fmt.Errorf("failed to register reminder job: %w", err)
	}

	c.EventSchedule.Start()
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) Cleanup() error {
	if c.EventSchedule != nil {
		c.EventSchedule.Stop()
	}
	if c.NATSClient != nil {
		c.NATSClient.Close()
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
