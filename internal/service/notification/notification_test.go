package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	coupondomain "github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testLogger(t *testing.T) logger.Logger {
	return logger.FromZap(zaptest.NewLogger(t))
}

func TestDispatcher_RunsSubmittedTasks(t *testing.T) {
	d := NewDispatcher(Config{Workers: 2, QueueSize: 10}, testLogger(t))
	require.NoError(t, d.Start(context.Background()))

	var ran int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		ok := d.Submit(Task{Name: fmt.Sprintf("t%d", i), Run: func(ctx context.Context) error {
			defer wg.Done()
			atomic.AddInt32(&ran, 1)
			return nil
		}})
		require.True(t, ok)
	}
	wg.Wait()
	assert.Equal(t, int32(5), atomic.LoadInt32(&ran))

	require.NoError(t, d.Stop(context.Background()))
	assert.False(t, d.IsRunning())
}

func TestDispatcher_FailuresAreContained(t *testing.T) {
	d := NewDispatcher(Config{Workers: 1, QueueSize: 10}, testLogger(t))
	require.NoError(t, d.Start(context.Background()))

	done := make(chan struct{})
	d.Submit(Task{Name: "erro", Run: func(ctx context.Context) error { return errors.New("falhou") }})
	d.Submit(Task{Name: "panico", Run: func(ctx context.Context) error { panic("boom") }})
	d.Submit(Task{Name: "ok", Run: func(ctx context.Context) error { close(done); return nil }})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker parou depois de uma falha")
	}
	require.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_SubmitNeverBlocks(t *testing.T) {
	d := NewDispatcher(Config{Workers: 1, QueueSize: 1}, testLogger(t))
	assert.False(t, d.Submit(Task{Name: "parado", Run: func(ctx context.Context) error { return nil }}))

	require.NoError(t, d.Start(context.Background()))
	release := make(chan struct{})
	started := make(chan struct{})
	blocker := Task{Name: "bloqueia", Run: func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}}
	require.True(t, d.Submit(blocker))
	<-started

	require.True(t, d.Submit(Task{Name: "na-fila", Run: func(ctx context.Context) error { return nil }}))
	assert.False(t, d.Submit(Task{Name: "excedente", Run: func(ctx context.Context) error { return nil }}))

	close(release)
	require.NoError(t, d.Stop(context.Background()))
	assert.False(t, d.Submit(Task{Name: "depois", Run: func(ctx context.Context) error { return nil }}))
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	d := NewDispatcher(Config{Workers: 1, QueueSize: 5}, testLogger(t))
	require.NoError(t, d.Start(context.Background()))

	var ran int32
	for i := 0; i < 5; i++ {
		d.Submit(Task{Name: "t", Run: func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&ran, 1)
			return nil
		}})
	}

	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, int32(5), atomic.LoadInt32(&ran))
}

func TestGatewaySender_Send(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewGatewaySender(srv.URL, time.Second)
	err := sender.Send(context.Background(), Message{From: "loja@example.com", Bcc: []string{"a@example.com"}, Subject: "Oi", HTML: "<p>oi</p>"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com"}, got.Bcc)
	assert.Equal(t, "loja@example.com", got.From)
}

func TestGatewaySender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"remetente inválido"}`))
	}))
	defer srv.Close()

	err := NewGatewaySender(srv.URL, time.Second).Send(context.Background(), Message{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

// recordingSender guarda as mensagens enviadas
type recordingSender struct {
	mu       sync.Mutex
	messages []Message
	failOn   int
}

func (s *recordingSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	if s.failOn == len(s.messages) {
		return errors.New("gateway indisponível")
	}
	return nil
}

// inlineQueue guarda as tarefas sem executá-las
type inlineQueue struct {
	tasks []Task
}

func (q *inlineQueue) Submit(t Task) bool {
	q.tasks = append(q.tasks, t)
	return true
}

func seedClients(store *memory.Store, n int) {
	for i := 0; i < n; i++ {
		store.AddClient(&client.Client{ID: fmt.Sprintf("c%03d", i), TenantID: "t1", Name: fmt.Sprintf("Cliente %03d", i), Email: fmt.Sprintf("c%03d@example.com", i)})
	}
	store.AddClient(&client.Client{ID: "sem-email", TenantID: "t1", Name: "Sem Email"})
	store.AddClient(&client.Client{ID: "outro", TenantID: "t2", Name: "Outro", Email: "outro@example.com"})
}

func testCoupon() *coupondomain.Coupon {
	return &coupondomain.Coupon{
		ID: "k1", TenantID: "t1", Name: "SAVE10",
		DiscountPercentage: decimal.NewFromInt(10),
		ExpirationDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCouponNotifier_SendsBccBatches(t *testing.T) {
	store := memory.NewStore(nil)
	seedClients(store, 120)
	sender := &recordingSender{}
	queue := &inlineQueue{}
	n := NewCouponNotifier(store, queue, sender, "loja@example.com", testLogger(t))

	n.CouponCreated(context.Background(), testCoupon())
	require.Len(t, queue.tasks, 1)
	assert.Empty(t, sender.messages, "o envio não pode acontecer no caminho da requisição")

	require.NoError(t, queue.tasks[0].Run(context.Background()))

	require.Len(t, sender.messages, 3)
	assert.Len(t, sender.messages[0].Bcc, 50)
	assert.Len(t, sender.messages[1].Bcc, 50)
	assert.Len(t, sender.messages[2].Bcc, 20)
	for _, m := range sender.messages {
		assert.Equal(t, "loja@example.com", m.From)
		assert.NotContains(t, m.Bcc, "outro@example.com")
		assert.Contains(t, m.HTML, "SAVE10")
	}
}

func TestCouponNotifier_BatchFailureDoesNotStopOthers(t *testing.T) {
	store := memory.NewStore(nil)
	seedClients(store, 120)
	sender := &recordingSender{failOn: 1}
	n := NewCouponNotifier(store, &inlineQueue{}, sender, "loja@example.com", testLogger(t))

	err := n.Notify(context.Background(), testCoupon())
	require.Error(t, err)
	assert.Len(t, sender.messages, 3)
}

func TestCouponNotifier_NoRecipients(t *testing.T) {
	sender := &recordingSender{}
	n := NewCouponNotifier(memory.NewStore(nil), &inlineQueue{}, sender, "loja@example.com", testLogger(t))

	require.NoError(t, n.Notify(context.Background(), testCoupon()))
	assert.Empty(t, sender.messages)
}

func TestBatches(t *testing.T) {
	assert.Empty(t, Batches(nil, 50))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, Batches([]string{"a", "b", "c"}, 2))
}
