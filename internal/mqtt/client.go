package mqtt

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/deep-blue-pool/poolchem_backend/config"
	"github.com/deep-blue-pool/poolchem_backend/internal/models"
	"github.com/deep-blue-pool/poolchem_backend/internal/services"
)

// Client wraps the MQTT client with pool chemistry specific functionality.
// Probe bridges publish reading sets (JSON preferred, comma-separated
// fallback) to the readings topic; parsed sets are handed to the reading
// handler.
type Client struct {
	client         mqtt.Client
	parser         *services.ReadingParser
	topicReadings  string
	readingHandler func(*models.TestInput)
	errorHandler   func(error)
	profileFunc    func() (poolType, poolSize string)
	isConnected    bool
}

// NewClient creates a new MQTT client for pool reading ingest
func NewClient(cfg config.MQTTConfig) *Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)
	opts.SetKeepAlive(cfg.KeepAlive)
	opts.SetPingTimeout(cfg.PingTimeout)
	opts.SetConnectRetry(cfg.ConnectRetry)
	opts.SetCleanSession(true)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := &Client{
		parser:        services.NewReadingParser(),
		topicReadings: cfg.TopicReadings,
		isConnected:   false,
	}

	// Set connection handlers
	opts.SetDefaultPublishHandler(client.defaultMessageHandler)
	opts.SetOnConnectHandler(client.onConnect)
	opts.SetConnectionLostHandler(client.onConnectionLost)

	client.client = mqtt.NewClient(opts)

	return client
}

// Connect establishes connection to MQTT broker
func (c *Client) Connect() error {
	log.Println("Connecting to MQTT broker...")

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Println("Successfully connected to MQTT broker")
	c.isConnected = true
	return nil
}

// Disconnect closes the MQTT connection
func (c *Client) Disconnect() {
	if c.isConnected {
		c.client.Disconnect(250)
		c.isConnected = false
		log.Println("Disconnected from MQTT broker")
	}
}

// IsConnected returns the connection status
func (c *Client) IsConnected() bool {
	return c.isConnected && c.client.IsConnected()
}

// SubscribeToReadings subscribes to the pool reading topics
func (c *Client) SubscribeToReadings() error {
	topics := map[string]byte{
		c.topicReadings:        1, // General readings topic
		c.topicReadings + "/+": 1, // + is wildcard for probe ID
	}

	for topic, qos := range topics {
		if token := c.client.Subscribe(topic, qos, c.readingMessageHandler); token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to subscribe to topic %s: %w", topic, token.Error())
		}
		log.Printf("Subscribed to topic: %s", topic)
	}

	return nil
}

// SetReadingHandler sets the callback function for parsed reading sets
func (c *Client) SetReadingHandler(handler func(*models.TestInput)) {
	c.readingHandler = handler
}

// SetErrorHandler sets the callback function for errors
func (c *Client) SetErrorHandler(handler func(error)) {
	c.errorHandler = handler
}

// SetProfileFunc sets the function supplying the pool profile used for
// comma-separated payloads, which carry readings only.
func (c *Client) SetProfileFunc(fn func() (poolType, poolSize string)) {
	c.profileFunc = fn
}

// readingMessageHandler processes incoming reading messages
func (c *Client) readingMessageHandler(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received reading on topic %s: %s", msg.Topic(), string(msg.Payload()))

	// Try parsing as JSON first (preferred format)
	input, err := c.parser.ParseReadingJSON(msg.Payload())
	if err != nil {
		// Fallback to comma-separated format
		poolType, poolSize := string(models.PoolTypeConcrete), "10000"
		if c.profileFunc != nil {
			poolType, poolSize = c.profileFunc()
		}
		input, err = c.parser.ParseReadingString(string(msg.Payload()), poolType, poolSize)
		if err != nil {
			log.Printf("Failed to parse reading set: %v", err)
			if c.errorHandler != nil {
				c.errorHandler(fmt.Errorf("reading parsing failed: %w", err))
			}
			return
		}
	}

	log.Printf("Parsed reading set: %s", c.parser.FormatReading(input))

	if c.readingHandler != nil {
		c.readingHandler(input)
	}
}

// defaultMessageHandler handles messages on unsubscribed topics
func (c *Client) defaultMessageHandler(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received message on unhandled topic %s: %s", msg.Topic(), string(msg.Payload()))
}

// onConnect callback when connection is established
func (c *Client) onConnect(client mqtt.Client) {
	log.Println("MQTT client connected")
	c.isConnected = true
}

// onConnectionLost callback when connection is lost
func (c *Client) onConnectionLost(client mqtt.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
	c.isConnected = false

	if c.errorHandler != nil {
		c.errorHandler(fmt.Errorf("MQTT connection lost: %w", err))
	}
}
