package queue

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel records the topology a subscribeFunc sets up.
type fakeChannel struct {
	exchangeName string
	exchangeKind string
	exchangeDur  bool

	queueName    string
	queueDurable bool
	queueAutoDel bool
	queueExcl    bool

	boundQueue    string
	boundExchange string

	consumedQueue string
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.exchangeName = name
	f.exchangeKind = kind
	f.exchangeDur = durable
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.queueName = name
	f.queueDurable = durable
	f.queueAutoDel = autoDelete
	f.queueExcl = exclusive
	if name == "" {
		// Broker assigns a name to server-named queues.
		name = "amq.gen-instance-1"
	}
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	f.boundQueue = name
	f.boundExchange = exchange
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	f.consumedQueue = queue
	ch := make(chan amqp.Delivery)
	close(ch)
	return ch, nil
}

func TestSubscribeWorkQueueSharesOneDurableQueue(t *testing.T) {
	ch := &fakeChannel{}

	_, err := subscribeWorkQueue(ProductionQueueName)(ch)
	require.NoError(t, err)

	assert.Equal(t, ProductionQueueName, ch.queueName)
	assert.True(t, ch.queueDurable)
	assert.False(t, ch.queueExcl)
	assert.Empty(t, ch.exchangeName, "work queue uses the default exchange")
	assert.Equal(t, ProductionQueueName, ch.consumedQueue)
}

func TestSubscribeFanoutGivesEachInstanceItsOwnQueue(t *testing.T) {
	ch := &fakeChannel{}

	_, err := subscribeFanout(ConfigExchangeName)(ch)
	require.NoError(t, err)

	assert.Equal(t, ConfigExchangeName, ch.exchangeName)
	assert.Equal(t, "fanout", ch.exchangeKind)
	assert.True(t, ch.exchangeDur)

	// A server-named exclusive auto-delete queue, not a shared work queue:
	// a shared queue would deliver each invalidation to only one instance.
	assert.Empty(t, ch.queueName)
	assert.True(t, ch.queueExcl)
	assert.True(t, ch.queueAutoDel)
	assert.False(t, ch.queueDurable)

	assert.Equal(t, "amq.gen-instance-1", ch.boundQueue)
	assert.Equal(t, ConfigExchangeName, ch.boundExchange)
	assert.Equal(t, "amq.gen-instance-1", ch.consumedQueue)
}
