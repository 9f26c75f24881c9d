package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/samuel/go-zookeeper/zk"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/events"
)

// AsyncProducer is an events.Publisher implementation for Kafka queues.
type AsyncProducer struct {
	producer       sarama.AsyncProducer
	logger         *zap.Logger
	topic          string
	successActions []string
	failureActions []string
}

// Publish implements the events.Publisher interface.
func (ap *AsyncProducer) Publish(e events.Event) {

	publishEvent := false
	if e.IsSuccessful() {
		publishEvent = publishEvent || stringInSlice("*", ap.successActions)
		publishEvent = publishEvent || stringInSlice(e.EventAction(), ap.successActions)
	} else {
		publishEvent = publishEvent || stringInSlice("*", ap.failureActions)
		publishEvent = publishEvent || stringInSlice(e.EventAction(), ap.failureActions)
	}
	if !publishEvent {
		return
	}

	msg := sarama.ProducerMessage{
		Topic: ap.topic,
		Value: sarama.ByteEncoder(e.Yield()),
	}

	ap.producer.Input() <- &msg
}

func stringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// Opt sets an option on an AsyncProducer.
type Opt func(*AsyncProducer)

// WithLogger sets a custom logger on an AsyncProducer.
func WithLogger(logger *zap.Logger) Opt {
	return func(ap *AsyncProducer) {
		ap.logger = logger
	}
}

// WithTopic sets the topic published to.
func WithTopic(topic string) Opt {
	return func(ap *AsyncProducer) {
		ap.topic = topic
	}
}

// WithPublishActions sets success and failure actions that should be published on an AsyncProducer
func WithPublishActions(successActions []string, failureActions []string) Opt {
	return func(ap *AsyncProducer) {
		ap.successActions = successActions
		ap.failureActions = failureActions
	}
}

// NewAsyncProducer constructs an AsyncProducer with internal defaults and supplied options.
func NewAsyncProducer(brokerList []string, opts ...Opt) (*AsyncProducer, error) {

	producer, err := sarama.NewAsyncProducer(brokerList, nil)
	if err != nil {
		return nil, err
	}
	ap := AsyncProducer{producer: producer}
	defaults(&ap)
	for _, opt := range opts {
		opt(&ap)
	}
	ap.start()

	return &ap, nil
}

func defaults(ap *AsyncProducer) {
	ap.logger = zap.NewNop()
	ap.topic = "claimshare-event"
	ap.successActions = []string{"*"}
	ap.failureActions = []string{"*"}
}

// DiscoverKafka returns a producer for brokers announced under a zookeeper
// path. The setter callback is invoked with a fresh producer when the broker
// set changes.
func DiscoverKafka(conn *zk.Conn, path string, setter func(*AsyncProducer), opts ...Opt) (*AsyncProducer, error) {

	brokers := buildBrokers(conn, path)
	if len(brokers) < 1 {
		return nil, errors.New("no broker data found at Kafka path")
	}

	ap, err := NewAsyncProducer(brokers, opts...)
	if err != nil {
		return nil, fmt.Errorf("broker data found, but could not establish connection to Kafka")
	}

	_, _, zkEvents, err := conn.ChildrenW(path)
	if err != nil {
		return nil, err
	}
	l := ap.logger

	go func() {
		for e := range zkEvents {
			if e.Type != zk.EventNodeChildrenChanged {
				continue
			}
			brokers := buildBrokers(conn, path)
			if len(brokers) < 1 {
				l.Error("no kafka brokers found at zk path", zap.String("path", path))
				continue
			}
			p, err := NewAsyncProducer(brokers, opts...)
			if err != nil {
				l.Error("error re-creating kafka connection", zap.Error(err))
				continue
			}
			l.Info("found kafka brokers", zap.Strings("brokers", brokers))
			setter(p)
		}
	}()

	return ap, nil
}

// ConnectZK establishes a zookeeper session for broker discovery.
func ConnectZK(addrs []string) (*zk.Conn, error) {
	conn, _, err := zk.Connect(addrs, 10*time.Second)
	return conn, err
}

type addr struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// buildBrokers queries a zookeeper path and returns a string slice of host:port pairs
// suitable for the kafka library's constructor. Errors are ignored, because the caller
// can decide what to do if a zero-length list of brokers is returned.
func buildBrokers(conn *zk.Conn, path string) []string {

	var brokers []string

	children, _, _ := conn.Children(path)
	for _, c := range children {
		data, _, err := conn.Get(path + "/" + c)
		if err != nil {
			break
		}
		var a addr
		if err := json.Unmarshal(data, &a); err != nil {
			break
		}
		brokers = append(brokers, fmt.Sprintf("%s:%v", a.Host, a.Port))
	}
	return brokers
}

func (ap *AsyncProducer) start() {
	go func() {
		for err := range ap.producer.Errors() {
			ap.logger.Error("kafka produce error", zap.Error(err))
		}
	}()
}
