package domain

import (
	"context"
	"fmt"
	"strings"
)

// Comment представляет комментарий или ответ в дереве обсуждения.
// Ответы хранятся по значению: у узла нет ссылки на родителя.
type Comment struct {
	ID        int64     `json:"id"`
	Author    string    `json:"username"`
	Content   string    `json:"content"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	Replies   []Comment `json:"replies"`
}

// Forest — упорядоченная последовательность корневых комментариев,
// то есть всё сохраняемое состояние обсуждения
type Forest []Comment

// VoteKind определяет тип голоса
type VoteKind string

const (
	Upvote   VoteKind = "upvote"
	Downvote VoteKind = "downvote"
)

// ParseVoteKind разбирает тип голоса. Принимаются также
// написания "upvotes" и "downvotes", совпадающие с именами полей.
func ParseVoteKind(s string) (VoteKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upvote", "upvotes", "up":
		return Upvote, nil
	case "downvote", "downvotes", "down":
		return Downvote, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidVote, s)
	}
}

// ForestRepository определяет хранилище снимка всего леса.
// found == false при отсутствии сохранённого значения.
type ForestRepository interface {
	Load(ctx context.Context) (forest Forest, found bool, err error)
	Save(ctx context.Context, forest Forest) error
}

// Clone возвращает глубокую копию комментария
func (c Comment) Clone() Comment {
	out := c
	out.Replies = Forest(c.Replies).Clone()
	return out
}

// Clone возвращает глубокую копию леса. Пустые ответы всегда
// представлены непустым срезом, чтобы сериализоваться как [].
func (f Forest) Clone() Forest {
	out := make(Forest, len(f))
	for i, c := range f {
		out[i] = c.Clone()
	}
	return out
}

// Count возвращает общее количество узлов, включая вложенные ответы
func (f Forest) Count() int {
	n := 0
	for _, c := range f {
		n += 1 + Forest(c.Replies).Count()
	}
	return n
}

// MaxID возвращает наибольший идентификатор в лесу или 0
func (f Forest) MaxID() int64 {
	var max int64
	for _, c := range f {
		if c.ID > max {
			max = c.ID
		}
		if m := Forest(c.Replies).MaxID(); m > max {
			max = m
		}
	}
	return max
}

// Validate проверяет уникальность идентификаторов во всём лесу
func (f Forest) Validate() error {
	seen := make(map[int64]struct{}, 64)
	return f.validate(seen)
}

func (f Forest) validate(seen map[int64]struct{}) error {
	for _, c := range f {
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = struct{}{}
		if err := Forest(c.Replies).validate(seen); err != nil {
			return err
		}
	}
	return nil
}
