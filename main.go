package main

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/LokeshAnde180/docspot/configuration"
	"github.com/LokeshAnde180/docspot/controllers"
	"github.com/LokeshAnde180/docspot/models"
	"github.com/LokeshAnde180/docspot/payment"
	"github.com/LokeshAnde180/docspot/routes"
	"github.com/LokeshAnde180/docspot/storage"
)

func main() {
	cfg, err := configuration.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuration error")
	}

	db, err := configuration.ConnectDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database error")
	}
	store := storage.New(db)
	defer store.Close()

	var cache controllers.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := configuration.NewCache(cfg)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, running without the doctor cache")
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	var mailer controllers.Mailer
	if m := controllers.NewSMTPMailer(cfg); m != nil {
		mailer = m
	}

	var provider payment.Provider = payment.Mock{}
	if cfg.RazorpayKeyID != "" && cfg.RazorpaySecret != "" {
		provider = payment.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpaySecret)
	}

	if err := seedAdmin(store, cfg); err != nil {
		logrus.WithError(err).Fatal("admin bootstrap failed")
	}

	h := controllers.New(store, cache, mailer, provider, cfg)
	r := routes.Setup(h, cfg)

	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

// seedAdmin creates the configured admin account on first start. Admins are
// never created through registration.
func seedAdmin(store *storage.Store, cfg *configuration.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := store.UserByEmail(cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	admin := models.User{
		Username:   cfg.AdminUsername,
		Email:      cfg.AdminEmail,
		Role:       models.RoleAdmin,
		IsApproved: true,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return err
	}
	if err := store.CreateUser(&admin); err != nil {
		return err
	}
	logrus.WithField("email", cfg.AdminEmail).Info("admin account created")
	return nil
}
