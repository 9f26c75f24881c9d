package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/auth"
	"github.com/NiubilityNetCore/claim-share-server/config"
	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/events"
	"github.com/NiubilityNetCore/claim-share-server/server"
	"github.com/NiubilityNetCore/claim-share-server/services/kafka"
	"github.com/NiubilityNetCore/claim-share-server/services/mail"
	"github.com/NiubilityNetCore/claim-share-server/services/registry"
	"github.com/NiubilityNetCore/claim-share-server/share"
)

// All loggers are derived from the global one
var logger = config.RootLogger

// The path kafka brokers announce under when zookeeper discovery is configured
var zkKafkaPath = config.GetEnvOrDefault("CS_ZK_KAFKA", "/brokers/ids")

func main() {

	cliParser := cli.NewApp()
	cliParser.Name = "claimshare"
	cliParser.Usage = "claim-share-server binary"
	cliParser.Version = "1.0"

	cliParser.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "conf",
			Usage: "Path to yaml configuration file.",
			Value: "claimshare.yml",
		},
		cli.StringFlag{
			Name:  "port",
			Usage: "Listen port, overrides configuration.",
		},
	}

	cliParser.Action = func(c *cli.Context) error {
		conf, err := config.NewAppConfiguration(c)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		err = serve(conf)
		if err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
		return nil
	}

	cliParser.Run(os.Args)
}

func serve(conf config.AppConfiguration) error {

	d, dbID, err := dao.NewDataAccessLayer(conf.DatabaseConnection, dao.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("could not set up database connection: %v", err)
	}
	logger.Info("database connected", zap.String("identifier", dbID))

	if err := d.EnsureBuiltInGroups(conf.ServerSettings.SiteAdmin); err != nil {
		return fmt.Errorf("could not ensure built in groups: %v", err)
	}

	queue := setupEventQueue(conf.EventQueue)

	var sender mail.Sender = &mail.FakeSender{}
	if conf.SMTP.Host != "" {
		sender = mail.NewSMTPSender(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.From, logger)
	}

	types := registry.NewStaticValidator(conf.ResourceTypes.Names)

	authz := auth.NewClaimAuth(logger, d)

	mgr := share.NewManager(d, authz, types,
		share.WithLogger(logger),
		share.WithEventQueue(queue),
		share.WithMail(sender, conf.ServerSettings.InviteCallbackURL),
	)

	app := server.NewAppServer(conf.ServerSettings, d, authz, mgr)
	app.EventQueue = queue

	logger.Info("listening", zap.String("addr", app.Addr))
	return http.ListenAndServe(app.Addr, app)
}

// setupEventQueue picks the publisher from configuration. Static broker
// addresses win over zookeeper discovery; with neither, events go nowhere.
func setupEventQueue(conf config.EventQueueConfiguration) events.Publisher {

	opts := []kafka.Opt{
		kafka.WithLogger(logger),
		kafka.WithTopic(conf.Topic),
	}
	if len(conf.PublishSuccessActions) > 0 || len(conf.PublishFailureActions) > 0 {
		opts = append(opts, kafka.WithPublishActions(conf.PublishSuccessActions, conf.PublishFailureActions))
	}

	if len(conf.KafkaAddrs) > 0 {
		ap, err := kafka.NewAsyncProducer(conf.KafkaAddrs, opts...)
		if err != nil {
			logger.Error("could not connect to kafka, events disabled", zap.Error(err))
			return events.NullPublisher{}
		}
		return ap
	}

	if len(conf.ZKAddrs) > 0 {
		conn, err := kafka.ConnectZK(conf.ZKAddrs)
		if err != nil {
			logger.Error("could not connect to zookeeper, events disabled", zap.Error(err))
			return events.NullPublisher{}
		}
		relay := &relayPublisher{}
		ap, err := kafka.DiscoverKafka(conn, zkKafkaPath, func(p *kafka.AsyncProducer) { relay.set(p) }, opts...)
		if err != nil {
			logger.Error("could not discover kafka brokers, events disabled", zap.Error(err))
			return events.NullPublisher{}
		}
		relay.set(ap)
		return relay
	}

	return events.NullPublisher{}
}
