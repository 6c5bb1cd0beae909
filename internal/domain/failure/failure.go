// Package failure define os tipos de falha expostos pelo núcleo de vendas.
//
// Cada falha tipada responde a errors.Is com a sua sentinela, de modo que
// camadas externas podem decidir o tratamento sem conhecer o tipo concreto.
package failure

import (
	"errors"
	"fmt"
	"time"
)

// Sentinelas de cada categoria de falha
var (
	ErrValidation        = errors.New("requisição inválida")
	ErrNotFound          = errors.New("registro não encontrado")
	ErrCouponExpired     = errors.New("cupom expirado")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrPersistence       = errors.New("falha de persistência")
	ErrConflict          = errors.New("registro duplicado")
)

// ValidationError descreve uma entrada malformada
type ValidationError struct {
	Field   string
	Message string
}

// Validation cria um novo ValidationError
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

// Is implementa a comparação com ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError indica que a entidade não existe ou pertence a outro tenant
type NotFoundError struct {
	Entity string
	ID     string
}

// NotFound cria um novo NotFoundError
func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s com ID %s não encontrado", e.Entity, e.ID)
}

// Is implementa a comparação com ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// CouponExpiredError indica que a data de expiração do cupom já passou
type CouponExpiredError struct {
	CouponID       string
	Name           string
	ExpirationDate time.Time
}

func (e *CouponExpiredError) Error() string {
	return fmt.Sprintf("o cupom %q expirou em %s", e.Name, e.ExpirationDate.Format(time.DateOnly))
}

// Is implementa a comparação com ErrCouponExpired
func (e *CouponExpiredError) Is(target error) bool { return target == ErrCouponExpired }

// InsufficientStockError carrega as quantidades disponível e solicitada
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para %q. Disponível: %d, Solicitado: %d",
		e.ProductName, e.Available, e.Requested)
}

// Is implementa a comparação com ErrInsufficientStock
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PersistenceError envolve um erro do armazenamento que impediu o commit
type PersistenceError struct {
	Op  string
	Err error
}

// Persistence envolve err como falha de persistência da operação op.
// Retorna nil quando err é nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s ao %s: %v", ErrPersistence, e.Op, e.Err)
}

// Is implementa a comparação com ErrPersistence
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Unwrap expõe o erro de origem
func (e *PersistenceError) Unwrap() error { return e.Err }

// IsDomain informa se err pertence a uma das categorias de negócio,
// isto é, qualquer falha que não seja de persistência.
func IsDomain(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCouponExpired) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrConflict)
}
