package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nats-io/nats.go"
	"github.com/robocafe/api/internal/auth"
	"github.com/robocafe/api/internal/catalog"
	"github.com/robocafe/api/internal/config"
	"github.com/robocafe/api/internal/logger"
	"github.com/robocafe/api/internal/payment"
	"github.com/robocafe/api/internal/robot"
	"github.com/robocafe/api/internal/router"
	"github.com/robocafe/api/internal/service"
	"github.com/robocafe/api/internal/store"
	"github.com/robocafe/api/internal/ws"
)

func main() {
	cfg := config.Load()
	appLog := logger.New("robocafe-api")

	cat := catalog.Default()
	orders := store.NewMemory()

	// NATS is optional: without it the robot is poll-only and there is no
	// alternate persistence path.
	var mirror service.Mirror
	var robotPub robot.Publisher
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("connect to NATS at %s: %v", cfg.NATSURL, err)
		}
		defer nc.Close()

		m, err := store.NewMirror(nc)
		if err != nil {
			log.Fatalf("open order mirror: %v", err)
		}
		mirror = m
		robotPub = nc
		appLog.Info("startup", "order mirror and robot transport connected")
	}

	dispatcher := robot.New(robotPub)
	svc := service.NewOrderService(orders, mirror, dispatcher, cfg.Tables, appLog)

	chefKeys, err := auth.NewChefKeyTable(cfg.ChefKeys)
	if err != nil {
		log.Fatalf("build chef key table: %v", err)
	}

	var payments payment.Processor
	if cfg.PaymentDelay > 0 {
		payments = payment.Simulator{Delay: cfg.PaymentDelay}
	}

	hub := ws.NewHub()
	go hub.Run()

	// Feed every store change into the staff websocket room.
	orders.Subscribe("", func(e store.Event) {
		payload, err := json.Marshal(e.Order)
		if err != nil {
			return
		}
		hub.Broadcast(ws.Event{Type: e.Type, Payload: payload})
	})

	r := router.New(cfg, svc, cat, chefKeys, payments, hub, appLog)

	appLog.Info("startup", "listening on :"+cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
