package tree

import (
	"strings"

	"github.com/oziev02/threadtree/internal/domain"
)

// Find возвращает первый в прямом порядке узел с идентификатором id
func Find(forest domain.Forest, id int64) (domain.Comment, bool) {
	var (
		found domain.Comment
		ok    bool
	)
	Walk(forest, func(c domain.Comment, _ int) bool {
		if c.ID == id {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

// Walk обходит лес в прямом порядке. Обход прекращается,
// как только fn возвращает false.
func Walk(forest domain.Forest, fn func(c domain.Comment, depth int) bool) {
	walk(forest, 0, fn)
}

func walk(forest domain.Forest, depth int, fn func(c domain.Comment, depth int) bool) bool {
	for _, c := range forest {
		if !fn(c, depth) {
			return false
		}
		if !walk(c.Replies, depth+1, fn) {
			return false
		}
	}
	return true
}

// Search возвращает узлы, содержимое которых содержит query без учёта регистра
func Search(forest domain.Forest, query string) []domain.Comment {
	q := strings.ToLower(strings.TrimSpace(query))
	result := make([]domain.Comment, 0)
	if q == "" {
		return result
	}
	Walk(forest, func(c domain.Comment, _ int) bool {
		if strings.Contains(strings.ToLower(c.Content), q) {
			result = append(result, c)
		}
		return true
	})
	return result
}
