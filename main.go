package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"xpresabot/app/client/envia"
	"xpresabot/app/client/manychat"
	"xpresabot/app/config"
	"xpresabot/app/server"
	"xpresabot/app/service/botlog"
	"xpresabot/app/service/conversation"
	"xpresabot/app/service/knowledge"
	"xpresabot/app/service/session"
	"xpresabot/app/service/settings"
	"xpresabot/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, manychat.NewClient)
	do.Provide(di, envia.NewClient)
	do.Provide(di, settings.New)
	do.Provide(di, knowledge.New)
	do.Provide(di, session.New)
	do.Provide(di, botlog.New)
	do.Provide(di, conversation.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go func() {
		if err := do.MustInvoke[*server.Server](di).Run(); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-appCtx.Done()
}
