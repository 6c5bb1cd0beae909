// Package notification executa efeitos colaterais assíncronos, como o envio
// de e-mails aos clientes, fora do caminho da requisição que os disparou.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/erp-pdv/pkg/logger"
)

// Task é uma unidade de trabalho em segundo plano
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Config define o tamanho do pool e da fila
type Config struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

// DefaultConfig retorna a configuração padrão do dispatcher
func DefaultConfig() Config {
	return Config{
		Workers:    2,
		QueueSize:  100,
		JobTimeout: 30 * time.Second,
	}
}

// Dispatcher é um pool de workers que consome tarefas de uma fila em memória.
// Falhas das tarefas são apenas registradas em log.
type Dispatcher struct {
	config  Config
	logger  logger.Logger
	queue   chan Task
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	running bool
}

// NewDispatcher cria um novo Dispatcher
func NewDispatcher(cfg Config, log logger.Logger) *Dispatcher {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = def.JobTimeout
	}
	return &Dispatcher{config: cfg, logger: log}
}

// Start inicia os workers
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return fmt.Errorf("dispatcher já está em execução")
	}

	workerCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.queue = make(chan Task, d.config.QueueSize)
	d.running = true

	for i := 0; i < d.config.Workers; i++ {
		d.wg.Add(1)
		go func(id int) {
			defer d.wg.Done()
			d.work(workerCtx, id, d.queue)
		}(i + 1)
	}

	d.logger.Info("dispatcher de notificações iniciado", "workers", d.config.Workers, "queue_size", d.config.QueueSize)
	return nil
}

// Submit enfileira a tarefa sem bloquear. Retorna false quando a fila
// está cheia ou o dispatcher está parado.
func (d *Dispatcher) Submit(t Task) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		d.logger.Warn("tarefa descartada, dispatcher parado", "task", t.Name)
		return false
	}

	select {
	case d.queue <- t:
		return true
	default:
		d.logger.Warn("tarefa descartada, fila cheia", "task", t.Name)
		return false
	}
}

// Stop fecha a fila e espera as tarefas pendentes. Se ctx expirar antes,
// as tarefas em execução são canceladas.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("dispatcher de notificações parado")
		return nil
	case <-ctx.Done():
		d.cancel()
		d.logger.Warn("tempo esgotado aguardando tarefas pendentes")
		return ctx.Err()
	}
}

// IsRunning informa se o dispatcher aceita tarefas
func (d *Dispatcher) IsRunning() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}

func (d *Dispatcher) work(ctx context.Context, id int, queue <-chan Task) {
	for t := range queue {
		d.run(ctx, id, t)
	}
}

func (d *Dispatcher) run(ctx context.Context, id int, t Task) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("pânico na tarefa", "worker", id, "task", t.Name, "panic", r)
		}
	}()

	taskCtx, cancel := context.WithTimeout(ctx, d.config.JobTimeout)
	defer cancel()

	start := time.Now()
	if err := t.Run(taskCtx); err != nil {
		d.logger.Error("erro ao executar tarefa", "worker", id, "task", t.Name, "error", err)
		return
	}
	d.logger.Debug("tarefa concluída", "worker", id, "task", t.Name, "duration", time.Since(start))
}
