// Package service holds the application logic between the HTTP handlers
// and the storage layer. Each service declares the narrow storage interface
// it needs, so tests can substitute mocks without touching Postgres.
package service

import (
	"github.com/ayame-bbs/ayame/internal/domain"
)

type BoardService interface {
	Get(id domain.BoardId) (domain.Board, error)
	List() ([]domain.Board, error)
}

type Board struct {
	storage BoardStorage
}

type BoardStorage interface {
	GetBoard(id domain.BoardId) (domain.Board, error)
	ListBoards() ([]domain.Board, error)
}

func NewBoard(storage BoardStorage) BoardService {
	return &Board{storage}
}

func (b *Board) Get(id domain.BoardId) (domain.Board, error) {
	return b.storage.GetBoard(id)
}

func (b *Board) List() ([]domain.Board, error) {
	return b.storage.ListBoards()
}
