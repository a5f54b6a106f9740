package config

import (
	"github.com/apiarycd/memberships/internal/memberships"
	"github.com/apiarycd/memberships/internal/queue"
	"github.com/apiarycd/memberships/internal/storage"
	"github.com/apiarycd/memberships/internal/users"
	"github.com/apiarycd/memberships/pkg/badgerfx"
	"github.com/apiarycd/memberships/pkg/openapifx"
	"github.com/go-core-fx/fiberfx"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) openapifx.Config {
			return openapifx.Config{
				Enabled:    cfg.HTTP.OpenAPI.Enabled,
				PublicHost: cfg.HTTP.OpenAPI.PublicHost,
				PublicPath: cfg.HTTP.OpenAPI.PublicPath,
			}
		}),
		fx.Provide(func(cfg Config) storage.Config {
			return storage.Config{
				Driver:   cfg.Storage.Driver,
				JSONPath: cfg.Storage.JSONPath,
				Badger: badgerfx.Config{
					Dir:      cfg.Storage.DataDir,
					InMemory: false,
					Verbose:  cfg.Storage.BadgerVerbose,
				},
				PostgresDSN: cfg.Storage.PostgresDSN,
			}
		}),
		fx.Provide(func(cfg Config) queue.Config {
			return queue.Config{
				Driver:  cfg.Queue.Driver,
				Workers: cfg.Queue.Workers,
				Buffer:  cfg.Queue.Buffer,
				Key:     cfg.Queue.Key,
				Redis: queue.RedisConfig{
					Address:  cfg.Queue.Redis.Address,
					Password: cfg.Queue.Redis.Password,
					DB:       cfg.Queue.Redis.DB,
				},
			}
		}),
		fx.Provide(func(cfg Config) memberships.Config {
			return memberships.Config{
				ActingUserID: cfg.Memberships.ActingUserID,
				Types:        cfg.Memberships.Types,
				ExtraBounds: lo.MapEntries(
					cfg.Memberships.Bounds,
					func(interval string, b boundsConfig) (memberships.BillingInterval, memberships.Bounds) {
						return memberships.BillingInterval(interval), memberships.Bounds{Min: b.Min, Max: b.Max, Unit: b.Unit}
					},
				),
			}
		}),
		fx.Provide(func(cfg Config) users.Config {
			return users.Config{
				Seed: lo.Map(cfg.Users.Seed, func(u seedUserConfig, _ int) users.SeedUser {
					return users.SeedUser{
						Username:  u.Username,
						Email:     u.Email,
						FirstName: u.FirstName,
						LastName:  u.LastName,
						Role:      u.Role,
					}
				}),
			}
		}),
	)
}
