package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"krishi/pkg/cropcal"
)

var reminder = cropcal.Reminder{
	FarmerPhone: "9000",
	Crop:        "Rice",
	Activity:    "First Weeding",
	Date:        civil.Date{Year: 2024, Month: 3, Day: 2},
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, NewLog(zap.New(core)).Notify(context.Background(), reminder))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "REMINDER for farmer 9000: Tomorrow is the day for 'First Weeding' on your Rice crop.", entries[0].Message)
	assert.Equal(t, "2024-03-02", entries[0].ContextMap()["date"])
}

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

func TestRedisStreamNotifier(t *testing.T) {
	fs := &fakeStream{}
	n := &RedisStreamNotifier{client: fs, stream: "krishi:reminders"}
	require.NoError(t, n.Notify(context.Background(), reminder))

	require.Len(t, fs.args, 1)
	assert.Equal(t, "krishi:reminders", fs.args[0].Stream)
	values := fs.args[0].Values.(map[string]interface{})
	assert.Equal(t, "9000", values["farmer_phone"])

	var p reminderPayload
	require.NoError(t, json.Unmarshal([]byte(values["data"].(string)), &p))
	assert.Equal(t, reminderPayload{
		FarmerPhone: "9000", Crop: "Rice", Activity: "First Weeding", Date: "2024-03-02",
		Message: reminder.Message(),
	}, p)

	fs.err = errors.New("READONLY")
	assert.ErrorContains(t, n.Notify(context.Background(), reminder), "READONLY")
	assert.NoError(t, n.Close())
}

type fakeToken struct {
	done chan struct{}
	err  error
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { <-t.done; return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type fakePublisher struct {
	topic   string
	qos     byte
	payload []byte
	err     error
	stuck   bool
}

func (f *fakePublisher) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	f.topic, f.qos, f.payload = topic, qos, payload.([]byte)
	tok := &fakeToken{done: make(chan struct{}), err: f.err}
	if !f.stuck {
		close(tok.done)
	}
	return tok
}

func TestMQTTNotifier(t *testing.T) {
	pub := &fakePublisher{}
	n := &MQTTNotifier{client: pub, topic: "krishi/reminders", timeout: time.Second}
	require.NoError(t, n.Notify(context.Background(), reminder))
	assert.Equal(t, "krishi/reminders/9000", pub.topic)
	assert.EqualValues(t, 1, pub.qos)
	assert.Contains(t, string(pub.payload), `"activity":"First Weeding"`)

	pub.err = errors.New("not connected")
	assert.ErrorContains(t, n.Notify(context.Background(), reminder), "not connected")

	pub.err, pub.stuck = nil, true
	n.timeout = 20 * time.Millisecond
	assert.ErrorContains(t, n.Notify(context.Background(), reminder), "timed out")
	n.Close()
}

func TestMQTTNotifier_TopicStripsWildcards(t *testing.T) {
	pub := &fakePublisher{}
	n := &MQTTNotifier{client: pub, topic: "krishi/reminders", timeout: time.Second}
	for phone, want := range map[string]string{
		"+919876543210":  "krishi/reminders/919876543210",
		"98 76/54#32":    "krishi/reminders/98765432",
		"+#/":            "krishi/reminders/unknown",
		"ext-9000_home.": "krishi/reminders/ext-9000_home.",
	} {
		r := reminder
		r.FarmerPhone = phone
		require.NoError(t, n.Notify(context.Background(), r))
		assert.Equal(t, want, pub.topic, phone)
		var got reminderPayload
		require.NoError(t, json.Unmarshal(pub.payload, &got))
		assert.Equal(t, phone, got.FarmerPhone, "payload keeps the raw phone")
	}
}

type countNotifier struct {
	n   int
	err error
}

func (c *countNotifier) Notify(context.Context, cropcal.Reminder) error {
	c.n++
	return c.err
}

func TestMulti_AllReceiveAndErrorsJoin(t *testing.T) {
	ok := &countNotifier{}
	bad := &countNotifier{err: errors.New("redis down")}
	worse := &countNotifier{err: errors.New("broker down")}

	err := Multi(bad, ok, worse).Notify(context.Background(), reminder)
	assert.ErrorContains(t, err, "redis down")
	assert.ErrorContains(t, err, "broker down")
	assert.Equal(t, 1, ok.n)
	assert.Equal(t, 1, bad.n)
	assert.Equal(t, 1, worse.n)

	assert.NoError(t, Multi(ok).Notify(context.Background(), reminder))
}
